package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/service"
	"github.com/BuzzLyutic/todo-manager/pkg/respond"
)

type CategoryHandler struct {
	service *service.CategoryService
	logger  *zap.Logger
}

func NewCategoryHandler(srv *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, categories)
}

func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	categories, err := h.service.Add(r.Context(), req.Name)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, categories)
}

func (h *CategoryHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
