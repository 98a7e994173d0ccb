package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
)

type expenseFixture struct {
	expenseRepo *fakeExpenseRepo
	weddingRepo *fakeWeddingRepo
	usecase     ExpenseUsecase
	userID      bson.ObjectID
	wedding     *model.Wedding
}

func newExpenseFixture(t *testing.T) *expenseFixture {
	t.Helper()

	f := &expenseFixture{
		expenseRepo: newFakeExpenseRepo(),
		weddingRepo: newFakeWeddingRepo(),
		userID:      bson.NewObjectID(),
	}
	f.usecase = NewExpenseUsecase(f.expenseRepo, f.weddingRepo)

	wedding, err := f.weddingRepo.CreateWedding(context.Background(), &model.Wedding{
		User: f.userID, GroomName: "Arjun", BrideName: "Priya", Date: time.Now(),
	})
	require.NoError(t, err)
	f.wedding = wedding

	return f
}

func TestAddExpense(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.usecase.AddExpense(context.Background(), f.userID, AddExpenseParams{
		Title:      "Venue",
		Amount:     50000,
		PaidAmount: 10000,
		Category:   "venue",
	})
	require.NoError(t, err)
	assert.Equal(t, f.wedding.ID, expense.Wedding)
	assert.False(t, expense.Date.IsZero(), "date defaults to now")
}

func TestAddExpense_PaidExceedsAmount(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.usecase.AddExpense(context.Background(), f.userID, AddExpenseParams{
		Title:      "Venue",
		Amount:     100,
		PaidAmount: 200,
	})
	assert.ErrorIs(t, err, ErrPaidExceedsAmount)
}

func TestListExpenses_NoWeddingIsEmptyList(t *testing.T) {
	f := newExpenseFixture(t)

	// A user without any wedding gets an empty list, not a 404.
	expenses, err := f.usecase.ListExpenses(context.Background(), bson.NewObjectID(), "")
	require.NoError(t, err)
	assert.NotNil(t, expenses)
	assert.Empty(t, expenses)
}

func TestUpdateExpense_MergedStateValidation(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	expense, err := f.usecase.AddExpense(ctx, f.userID, AddExpenseParams{
		Title: "Catering", Amount: 1000, PaidAmount: 800,
	})
	require.NoError(t, err)

	// Lowering the amount below the already-paid figure is rejected.
	lower := 500.0
	_, err = f.usecase.UpdateExpense(ctx, f.userID, expense.ID.Hex(), repository.UpdateExpenseParams{Amount: &lower})
	assert.ErrorIs(t, err, ErrPaidExceedsAmount)

	// Raising paid within the stored amount is fine.
	paid := 1000.0
	updated, err := f.usecase.UpdateExpense(ctx, f.userID, expense.ID.Hex(), repository.UpdateExpenseParams{PaidAmount: &paid})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.PaidAmount)
}

func TestUpdateExpense_OwnershipEnforced(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	expense, err := f.usecase.AddExpense(ctx, f.userID, AddExpenseParams{Title: "Decor", Amount: 300})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = f.usecase.UpdateExpense(ctx, bson.NewObjectID(), expense.ID.Hex(), repository.UpdateExpenseParams{Title: &title})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
