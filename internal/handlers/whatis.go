package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/models"
	"github.com/GregMSThompson/whatis/internal/response"
	"github.com/GregMSThompson/whatis/pkg/logger"
)

const serviceName = "whatis.sh"

type WhatisService interface {
	Describe(ctx context.Context, q models.Query) (string, error)
}

type whatisHandlers struct {
	ResponseHandler response.ResponseHandler
	WhatisSvc       WhatisService
}

func NewWhatisHandlers(deps *Deps) *whatisHandlers {
	return &whatisHandlers{
		ResponseHandler: deps.ResponseHandler,
		WhatisSvc:       deps.WhatisSvc,
	}
}

func (h *whatisHandlers) WhatisRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/", h.Whatis)
	r.Post("/", h.Whatis)
	r.Get("/{"+commandParam+"}", h.Whatis)
	return r
}

func (h *whatisHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: serviceName,
	})
}

// Whatis serves every query shape; normalizeQuery decides which one it is.
func (h *whatisHandlers) Whatis(w http.ResponseWriter, r *http.Request) {
	q, err := normalizeQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if !q.NeedsBackend() {
		h.ResponseHandler.WriteText(w, r, http.StatusOK, UsageText)
		return
	}

	_, ctx := logger.With(r.Context(), "subject", q.Subject, "verbose", q.Verbose)
	answer, err := h.WhatisSvc.Describe(ctx, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r.WithContext(ctx), err)
		return
	}

	h.ResponseHandler.WriteText(w, r, http.StatusOK, answer)
}
