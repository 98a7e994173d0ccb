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

// GuestHandler serves the guest-list endpoints.
type GuestHandler struct {
	guestUsecase usecase.GuestUsecase
	validator    *validator.Validator
	logger       *zerolog.Logger
}

// NewGuestHandler creates a new GuestHandler instance.
func NewGuestHandler(
	guestUsecase usecase.GuestUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *GuestHandler {
	return &GuestHandler{
		guestUsecase: guestUsecase,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRoutes mounts the guest endpoints on the given router.
func (h *GuestHandler) RegisterRoutes(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/guests", func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Post("/", h.AddGuest)
		r.Get("/", h.ListGuests)
		r.Put("/{id}", h.UpdateGuest)
	})
}

func (h *GuestHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.AddGuestRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	guest, err := h.guestUsecase.AddGuest(r.Context(), user.ID, usecase.AddGuestParams{
		WeddingID:   req.WeddingID,
		Name:        req.Name,
		CityVillage: req.CityVillage,
		FamilyCount: req.FamilyCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to add guest")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, guest)
}

func (h *GuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	guests, err := h.guestUsecase.ListGuests(r.Context(), user.ID, r.URL.Query().Get("weddingId"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to list guests")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, guests)
}

func (h *GuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.UpdateGuestRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	guest, err := h.guestUsecase.UpdateGuest(r.Context(), user.ID, chi.URLParam(r, "id"),
		repository.UpdateGuestParams{
			Name:         req.Name,
			CityVillage:  req.CityVillage,
			FamilyCount:  req.FamilyCount,
			IsInvited:    req.IsInvited,
			ShagunAmount: req.ShagunAmount,
		})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGuestNotFound):
			writeMessage(w, http.StatusNotFound, "Guest not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update guest")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, guest)
}
