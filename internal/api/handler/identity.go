package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/rpsduel-go/internal/api/middleware"
	"github.com/mcoot/rpsduel-go/internal/api/request"
	"github.com/mcoot/rpsduel-go/internal/api/response"
	"github.com/mcoot/rpsduel-go/internal/services/auth"
)

// IdentityHandler handles identity and session endpoints
type IdentityHandler struct {
	authService *auth.Service
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(authService *auth.Service) *IdentityHandler {
	return &IdentityHandler{authService: authService}
}

// Claim handles POST /api/v1/identities/claim
func (h *IdentityHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req request.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.ClaimIdentity(r.Context(), req.Address)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthFromSession(session))
}

// Register handles POST /api/v1/identities/register
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Passphrase == "" {
		WriteError(w, NewInvalidRequestError("passphrase is required"))
		return
	}

	session, err := h.authService.Register(r.Context(), req.Address, req.Passphrase)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthFromSession(session))
}

// Login handles POST /api/v1/identities/login
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Address, req.Passphrase)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthFromSession(session))
}

// GetMe handles GET /api/v1/identities/me
func (h *IdentityHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	addr := middleware.MustGetIdentity(r.Context())
	response.JSON(w, http.StatusOK, response.IdentityResponse{Address: string(addr)})
}
