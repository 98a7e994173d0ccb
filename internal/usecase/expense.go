package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
)

// ExpenseUsecase defines the interface for expense-related use cases.
type ExpenseUsecase interface {
	AddExpense(ctx context.Context, userID bson.ObjectID, params AddExpenseParams) (*model.Expense, error)

	// ListExpenses returns the expenses of the resolved wedding, or an
	// empty list when the caller has no wedding yet.
	ListExpenses(ctx context.Context, userID bson.ObjectID, weddingID string) ([]*model.Expense, error)

	UpdateExpense(ctx context.Context, userID bson.ObjectID, expenseID string, params repository.UpdateExpenseParams) (*model.Expense, error)
}

// AddExpenseParams defines the parameters for adding an expense.
type AddExpenseParams struct {
	WeddingID  string
	Title      string
	Amount     float64
	PaidAmount float64
	Category   string
	Date       time.Time
}

var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrPaidExceedsAmount = errors.New("paid amount cannot exceed total amount")
)

type expenseUsecase struct {
	expenseRepo repository.ExpenseRepository
	weddingRepo repository.WeddingRepository
}

func NewExpenseUsecase(
	expenseRepo repository.ExpenseRepository,
	weddingRepo repository.WeddingRepository,
) ExpenseUsecase {
	return &expenseUsecase{
		expenseRepo: expenseRepo,
		weddingRepo: weddingRepo,
	}
}

func (u *expenseUsecase) AddExpense(
	ctx context.Context,
	userID bson.ObjectID,
	params AddExpenseParams,
) (*model.Expense, error) {
	if params.PaidAmount > params.Amount {
		return nil, ErrPaidExceedsAmount
	}

	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, params.WeddingID)
	if err != nil {
		return nil, err
	}

	return u.expenseRepo.CreateExpense(ctx, &model.Expense{
		Wedding:    wedding.ID,
		Title:      params.Title,
		Amount:     params.Amount,
		PaidAmount: params.PaidAmount,
		Category:   params.Category,
		Date:       params.Date,
	})
}

func (u *expenseUsecase) ListExpenses(
	ctx context.Context,
	userID bson.ObjectID,
	weddingID string,
) ([]*model.Expense, error) {
	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, weddingID)
	if err != nil {
		// A user without a wedding gets an empty expense list, not an
		// error; the dashboard renders before any wedding exists.
		if errors.Is(err, ErrWeddingNotFound) {
			return []*model.Expense{}, nil
		}
		return nil, err
	}

	expenses, err := u.expenseRepo.ListExpensesByWedding(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []*model.Expense{}
	}

	return expenses, nil
}

func (u *expenseUsecase) UpdateExpense(
	ctx context.Context,
	userID bson.ObjectID,
	expenseID string,
	params repository.UpdateExpenseParams,
) (*model.Expense, error) {
	expense, err := u.expenseRepo.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if _, err := u.weddingRepo.GetOwnedWedding(ctx, expense.Wedding.Hex(), userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	// Validate against the merged state, not just the patch.
	amount := expense.Amount
	if params.Amount != nil {
		amount = *params.Amount
	}
	paid := expense.PaidAmount
	if params.PaidAmount != nil {
		paid = *params.PaidAmount
	}
	if paid > amount {
		return nil, ErrPaidExceedsAmount
	}

	updated, err := u.expenseRepo.UpdateExpense(ctx, expenseID, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	return updated, nil
}
