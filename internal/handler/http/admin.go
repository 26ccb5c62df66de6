package http

import (
	"log/slog"
	"net/http"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"github.com/kennar-hris/kennar-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	adminService admin.AdminService
}

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandlerImpl{adminService: adminService}
}

// List handles GET /admins
func (h *adminHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.ListAdmins(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, admins)
}

// Create handles POST /admins
func (h *adminHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req admin.CreateAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("Failed to decode admin request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.adminService.CreateAdmin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// Delete handles DELETE /admins/{id}
func (h *adminHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid admin id", nil)
		return
	}

	if err := h.adminService.DeleteAdmin(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, admin.DeleteAdminResponse{Success: true})
}
