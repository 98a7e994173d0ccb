package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/shagunapp/shagun-api/internal/middleware"
	"github.com/shagunapp/shagun-api/internal/payload"
	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/internal/usecase"
	"github.com/shagunapp/shagun-api/shared/validator"
)

// ShagunHandler serves the shagun ledger endpoints.
type ShagunHandler struct {
	shagunUsecase usecase.ShagunUsecase
	validator     *validator.Validator
	logger        *zerolog.Logger
}

// NewShagunHandler creates a new ShagunHandler instance.
func NewShagunHandler(
	shagunUsecase usecase.ShagunUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ShagunHandler {
	return &ShagunHandler{
		shagunUsecase: shagunUsecase,
		validator:     validator,
		logger:        logger,
	}
}

// RegisterRoutes mounts the shagun endpoints on the given router.
func (h *ShagunHandler) RegisterRoutes(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/shagun", func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Post("/", h.AddShagun)
		r.Get("/", h.ListShagun)
		r.Put("/{id}", h.UpdateShagun)
		r.Delete("/{id}", h.DeleteShagun)
	})
}

func (h *ShagunHandler) AddShagun(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.AddShagunRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.shagunUsecase.AddShagun(r.Context(), user.ID, usecase.AddShagunParams{
		WeddingID: req.WeddingID,
		Name:      req.Name,
		Amount:    req.Amount,
		City:      req.City,
		Gift:      req.Gift,
		Contact:   req.Contact,
		Wishes:    req.Wishes,
		Type:      req.Type,
		Date:      req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to add shagun entry")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *ShagunHandler) ListShagun(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	entries, err := h.shagunUsecase.ListShagun(r.Context(), user.ID, r.URL.Query().Get("weddingId"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to list shagun entries")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *ShagunHandler) UpdateShagun(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.UpdateShagunRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.shagunUsecase.UpdateShagun(r.Context(), user.ID, chi.URLParam(r, "id"),
		repository.UpdateShagunParams{
			Name:    req.Name,
			Amount:  req.Amount,
			City:    req.City,
			Gift:    req.Gift,
			Contact: req.Contact,
			Wishes:  req.Wishes,
			Type:    req.Type,
			Date:    req.Date,
		})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrShagunNotFound):
			writeMessage(w, http.StatusNotFound, "Shagun not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update shagun entry")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *ShagunHandler) DeleteShagun(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	if err := h.shagunUsecase.DeleteShagun(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, usecase.ErrShagunNotFound):
			writeMessage(w, http.StatusNotFound, "Shagun not found")
		default:
			h.logger.Error().Err(err).Msg("failed to delete shagun entry")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Shagun removed")
}
