package handler

import (
	"encoding/json"
	"net/http"

	"innkeeper/internal/admins/service"
	apperrors "innkeeper/pkg/errors"
	httputil "innkeeper/pkg/http"
	"innkeeper/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AdminHandler struct {
	service service.AdminService
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin, err := h.service.Setup(r.Context())
	if err != nil {
		h.writeError(w, "Setup", err)
		return
	}

	if err := httputil.WriteCreated(w, admin); err != nil {
		h.log.Error("failed to write created response", "handler", "Setup", "error", err)
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Login", apperrors.InvalidInput("Invalid request body"))
		return
	}

	_, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, loginResponse{Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *AdminHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/admin/setup", h.Setup)
	router.POST("/api/v1/admin/login", h.Login)
}
