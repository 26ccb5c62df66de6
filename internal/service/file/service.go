package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/storage"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"
	"golang.org/x/image/draw"
)

const (
	// MaxImageSize bounds an uploaded employee photo
	MaxImageSize = 10 << 20

	// Photos wider or taller than this are scaled down before storing
	maxImageDimension = 1024

	// Decode limits; the header is checked before any pixel is allocated
	maxDecodeSide   = 12000
	maxDecodePixels = 50_000_000

	employeeImageDir = "employees"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type FileService interface {
	// UploadEmployeeImage stores a photo under a unique name and returns its storage path
	UploadEmployeeImage(ctx context.Context, file io.Reader) (string, error)

	// ReadDataURI returns a stored file as a data URI with its sniffed MIME type
	ReadDataURI(ctx context.Context, path string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	FileURL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadEmployeeImage implements FileService.
func (s *fileServiceImpl) UploadEmployeeImage(ctx context.Context, file io.Reader) (string, error) {
	buffer, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > MaxImageSize {
		return "", validator.ValidationErrors{{Field: "image", Message: "image size must not exceed 10MB"}}
	}

	// Trust the content, not the client supplied name or header
	mime := mimetype.Detect(buffer)
	ext, ok := imageExtensions[mime.String()]
	if !ok {
		return "", validator.ValidationErrors{{Field: "image", Message: "invalid file type: only jpg, jpeg, png, webp allowed"}}
	}

	buffer, err = downscaleImage(buffer, mime.String(), maxImageDimension)
	if errors.Is(err, errImageTooLarge) {
		return "", validator.ValidationErrors{{Field: "image", Message: "image dimensions are too large"}}
	}
	if err != nil {
		return "", validator.ValidationErrors{{Field: "image", Message: "image could not be decoded"}}
	}

	newPath := path.Join(employeeImageDir, uuid.New().String()+ext)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(buffer), newPath, mime.String())
	if err != nil {
		return "", fmt.Errorf("failed to upload employee image: %w", err)
	}

	return uploadedPath, nil
}

// ReadDataURI implements FileService.
func (s *fileServiceImpl) ReadDataURI(ctx context.Context, filePath string) (string, error) {
	rc, err := s.storage.Download(ctx, filePath)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	mime := mimetype.Detect(data)
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, filePath string) error {
	return s.storage.Delete(ctx, filePath)
}

// FileURL returns the public URL of a stored file
func (s *fileServiceImpl) FileURL(filePath string) string {
	return s.storage.URL(filePath)
}

// ==================== HELPER FUNCTIONS ====================

var (
	errUnsupportedFormat = errors.New("unsupported image format")
	errImageTooLarge     = errors.New("image dimensions exceed decode limit")
)

// downscaleImage shrinks JPEG and PNG photos whose longest side exceeds
// maxDim, keeping the aspect ratio and the original format. Other formats and
// images already within bounds are returned unchanged.
func downscaleImage(buffer []byte, mimeType string, maxDim int) ([]byte, error) {
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return buffer, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width > maxDecodeSide || cfg.Height > maxDecodeSide ||
		int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels {
		return nil, fmt.Errorf("%w: %dx%d", errImageTooLarge, cfg.Width, cfg.Height)
	}
	if cfg.Width <= maxDim && cfg.Height <= maxDim {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	width, height := scaledSize(cfg.Width, cfg.Height, maxDim)
	resized := resizeImage(img, width, height)

	buf := new(bytes.Buffer)
	switch mimeType {
	case "image/jpeg":
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 85})
	case "image/png":
		err = png.Encode(buf, resized)
	default:
		err = errUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// scaledSize fits width x height inside a maxDim square
func scaledSize(width, height, maxDim int) (int, int) {
	if width >= height {
		h := height * maxDim / width
		if h < 1 {
			h = 1
		}
		return maxDim, h
	}
	w := width * maxDim / height
	if w < 1 {
		w = 1
	}
	return w, maxDim
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
