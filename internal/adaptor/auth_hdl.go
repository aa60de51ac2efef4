package adaptor

import (
	"net/http"

	"product-catalog/internal/dto/request"
	"product-catalog/internal/usecase"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	users   usecase.UserService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, users usecase.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		users:   users,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Login successful", tokens)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", tokens)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	if err := h.service.Logout(r.Context(), p.Email); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	user, err := h.users.Me(r.Context(), p.ID)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Current user", user)
}
