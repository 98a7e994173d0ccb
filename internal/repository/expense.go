package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shagunapp/shagun-api/internal/model"
)

// ExpenseRepository defines the interface for expense-related database operations.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	ListExpensesByWedding(ctx context.Context, weddingID bson.ObjectID) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, id string, params UpdateExpenseParams) (*model.Expense, error)
	DeleteExpensesByWeddings(ctx context.Context, weddingIDs []bson.ObjectID) (int64, error)
}

// UpdateExpenseParams defines the optional parameters for updating an expense.
// Only the fields that are not nil will be updated.
type UpdateExpenseParams struct {
	Title      *string
	Amount     *float64
	PaidAmount *float64
	Category   *string
	Date       *time.Time
}

const expenseCollection = "expenses"

type expenseMongoRepository struct {
	db *mongo.Database
}

func NewExpenseMongoRepository(db *mongo.Database) ExpenseRepository {
	return &expenseMongoRepository{db: db}
}

func (r *expenseMongoRepository) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	result, err := r.db.Collection(expenseCollection).InsertOne(ctx, expense)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		expense.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return expense, nil
}

func (r *expenseMongoRepository) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(expenseCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var expense model.Expense
	if err := result.Decode(&expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (r *expenseMongoRepository) ListExpensesByWedding(
	ctx context.Context,
	weddingID bson.ObjectID,
) ([]*model.Expense, error) {
	cursor, err := r.db.Collection(expenseCollection).Find(ctx, bson.M{"wedding": weddingID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var expenses []*model.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseMongoRepository) UpdateExpense(
	ctx context.Context,
	id string,
	params UpdateExpenseParams,
) (*model.Expense, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Amount != nil {
		updateMap["amount"] = *params.Amount
	}
	if params.PaidAmount != nil {
		updateMap["paidAmount"] = *params.PaidAmount
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Date != nil {
		updateMap["date"] = *params.Date
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no expense fields to update")
	}

	result := r.db.Collection(expenseCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var expense model.Expense
	if err := result.Decode(&expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (r *expenseMongoRepository) DeleteExpensesByWeddings(
	ctx context.Context,
	weddingIDs []bson.ObjectID,
) (int64, error) {
	if len(weddingIDs) == 0 {
		return 0, nil
	}

	result, err := r.db.Collection(expenseCollection).DeleteMany(ctx, bson.M{
		"wedding": bson.M{"$in": weddingIDs},
	})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
