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

// ExpenseHandler serves the expense endpoints.
type ExpenseHandler struct {
	expenseUsecase usecase.ExpenseUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler instance.
func NewExpenseHandler(
	expenseUsecase usecase.ExpenseUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ExpenseHandler {
	return &ExpenseHandler{
		expenseUsecase: expenseUsecase,
		validator:      validator,
		logger:         logger,
	}
}

// RegisterRoutes mounts the expense endpoints on the given router.
func (h *ExpenseHandler) RegisterRoutes(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/expenses", func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Post("/", h.AddExpense)
		r.Get("/", h.ListExpenses)
		r.Put("/{id}", h.UpdateExpense)
	})
}

func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.AddExpenseRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.expenseUsecase.AddExpense(r.Context(), user.ID, usecase.AddExpenseParams{
		WeddingID:  req.WeddingID,
		Title:      req.Title,
		Amount:     req.Amount,
		PaidAmount: req.PaidAmount,
		Category:   req.Category,
		Date:       req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPaidExceedsAmount):
			writeMessage(w, http.StatusBadRequest, "Paid amount cannot exceed total amount")
		case errors.Is(err, usecase.ErrWeddingNotFound):
			writeMessage(w, http.StatusNotFound, "Wedding not found")
		default:
			h.logger.Error().Err(err).Msg("failed to add expense")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	expenses, err := h.expenseUsecase.ListExpenses(r.Context(), user.ID, r.URL.Query().Get("weddingId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list expenses")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req payload.UpdateExpenseRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.expenseUsecase.UpdateExpense(r.Context(), user.ID, chi.URLParam(r, "id"),
		repository.UpdateExpenseParams{
			Title:      req.Title,
			Amount:     req.Amount,
			PaidAmount: req.PaidAmount,
			Category:   req.Category,
			Date:       req.Date,
		})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrExpenseNotFound):
			writeMessage(w, http.StatusNotFound, "Expense not found")
		case errors.Is(err, usecase.ErrPaidExceedsAmount):
			writeMessage(w, http.StatusBadRequest, "Paid amount cannot exceed total amount")
		default:
			h.logger.Error().Err(err).Msg("failed to update expense")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, expense)
}
