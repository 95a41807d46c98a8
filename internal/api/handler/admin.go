package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsduel-go/internal/api/middleware"
	"github.com/mcoot/rpsduel-go/internal/api/request"
	"github.com/mcoot/rpsduel-go/internal/api/response"
	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/services/admin"
)

// AdminHandler handles contract-state and blacklist endpoints
type AdminHandler struct {
	adminService *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetOwner handles GET /api/v1/contract/owner
func (h *AdminHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.adminService.Owner(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OwnerResponse{Owner: string(owner)})
}

// GetAdmin handles GET /api/v1/contract/admin
func (h *AdminHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	adminAddr, err := h.adminService.Admin(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.AdminResponse{}
	if adminAddr != "" {
		s := string(adminAddr)
		resp.Admin = &s
	}
	response.JSON(w, http.StatusOK, resp)
}

// TransferAdmin handles PUT /api/v1/contract/admin
func (h *AdminHandler) TransferAdmin(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetIdentity(r.Context())

	var req request.TransferAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	newAdmin, err := model.ParseIdentity(req.AdminAddress)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.adminService.TransferAdmin(r.Context(), actor, newAdmin); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetBlacklist handles GET /api/v1/contract/blacklist
func (h *AdminHandler) GetBlacklist(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.adminService.Blacklist(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.BlacklistResponse{Addresses: make([]string, len(addrs))}
	for i, addr := range addrs {
		resp.Addresses[i] = string(addr)
	}
	response.JSON(w, http.StatusOK, resp)
}

// AddToBlacklist handles POST /api/v1/contract/blacklist
func (h *AdminHandler) AddToBlacklist(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetIdentity(r.Context())

	var req request.BlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	target, err := model.ParseIdentity(req.Address)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.adminService.AddToBlacklist(r.Context(), actor, target); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RemoveFromBlacklist handles DELETE /api/v1/contract/blacklist/{address}
func (h *AdminHandler) RemoveFromBlacklist(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetIdentity(r.Context())

	target, err := model.ParseIdentity(mux.Vars(r)["address"])
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.adminService.RemoveFromBlacklist(r.Context(), actor, target); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
