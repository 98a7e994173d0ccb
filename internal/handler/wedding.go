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

// WeddingHandler serves the wedding endpoints.
type WeddingHandler struct {
	weddingUsecase usecase.WeddingUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

// NewWeddingHandler creates a new WeddingHandler instance.
func NewWeddingHandler(
	weddingUsecase usecase.WeddingUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *WeddingHandler {
	return &WeddingHandler{
		weddingUsecase: weddingUsecase,
		validator:      validator,
		logger:         logger,
	}
}

// RegisterRoutes mounts the wedding endpoints on the given router.
func (h *WeddingHandler) RegisterRoutes(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/weddings", func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Post("/", h.CreateWedding)
		r.Get("/", h.ListWeddings)
		r.Get("/my", h.MyWedding)
		r.Put("/{id}", h.UpdateWedding)
	})
}

func (h *WeddingHandler) CreateWedding(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.CreateWeddingRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	wedding, err := h.weddingUsecase.CreateWedding(r.Context(), user.ID, usecase.CreateWeddingParams{
		GroomName:  req.GroomName,
		BrideName:  req.BrideName,
		GroomImage: req.GroomImage,
		BrideImage: req.BrideImage,
		Date:       req.Date,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create wedding")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, wedding)
}

func (h *WeddingHandler) ListWeddings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	weddings, err := h.weddingUsecase.ListWeddings(r.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list weddings")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, weddings)
}

func (h *WeddingHandler) MyWedding(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	stats, err := h.weddingUsecase.MyWedding(r.Context(), user.ID, r.URL.Query().Get("weddingId"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to resolve wedding context")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, payload.MyWeddingResponse{
		Wedding: stats.Wedding,
		StartStatistics: payload.WeddingStatistics{
			GuestCount: stats.GuestCount,
			TotalSpent: stats.TotalSpent,
		},
	})
}

func (h *WeddingHandler) UpdateWedding(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.UpdateWeddingRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	wedding, err := h.weddingUsecase.UpdateWedding(r.Context(), user.ID, chi.URLParam(r, "id"),
		repository.UpdateWeddingParams{
			GroomName:   req.GroomName,
			BrideName:   req.BrideName,
			GroomImage:  req.GroomImage,
			BrideImage:  req.BrideImage,
			Date:        req.Date,
			TotalBudget: req.TotalBudget,
		})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update wedding")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, wedding)
}
