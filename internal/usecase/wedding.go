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

// WeddingUsecase defines the interface for wedding-related use cases.
type WeddingUsecase interface {
	CreateWedding(ctx context.Context, userID bson.ObjectID, params CreateWeddingParams) (*model.Wedding, error)

	// ListWeddings returns all weddings of the caller, date descending.
	ListWeddings(ctx context.Context, userID bson.ObjectID) ([]*model.Wedding, error)

	// MyWedding resolves the wedding context (explicit id or the
	// most-recently-created) and attaches dashboard statistics.
	MyWedding(ctx context.Context, userID bson.ObjectID, weddingID string) (*WeddingStats, error)

	UpdateWedding(ctx context.Context, userID bson.ObjectID, id string, params repository.UpdateWeddingParams) (*model.Wedding, error)
}

// CreateWeddingParams defines the parameters for creating a wedding.
type CreateWeddingParams struct {
	GroomName  string
	BrideName  string
	GroomImage string
	BrideImage string
	Date       time.Time
}

// WeddingStats is a wedding together with its dashboard statistics.
type WeddingStats struct {
	Wedding    *model.Wedding
	GuestCount int64
	TotalSpent float64
}

var ErrWeddingNotFound = errors.New("wedding not found")

type weddingUsecase struct {
	weddingRepo repository.WeddingRepository
	guestRepo   repository.GuestRepository
	expenseRepo repository.ExpenseRepository
}

func NewWeddingUsecase(
	weddingRepo repository.WeddingRepository,
	guestRepo repository.GuestRepository,
	expenseRepo repository.ExpenseRepository,
) WeddingUsecase {
	return &weddingUsecase{
		weddingRepo: weddingRepo,
		guestRepo:   guestRepo,
		expenseRepo: expenseRepo,
	}
}

func (u *weddingUsecase) CreateWedding(
	ctx context.Context,
	userID bson.ObjectID,
	params CreateWeddingParams,
) (*model.Wedding, error) {
	return u.weddingRepo.CreateWedding(ctx, &model.Wedding{
		User:       userID,
		GroomName:  params.GroomName,
		BrideName:  params.BrideName,
		GroomImage: params.GroomImage,
		BrideImage: params.BrideImage,
		Date:       params.Date,
	})
}

func (u *weddingUsecase) ListWeddings(ctx context.Context, userID bson.ObjectID) ([]*model.Wedding, error) {
	weddings, err := u.weddingRepo.ListWeddingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if weddings == nil {
		weddings = []*model.Wedding{}
	}

	return weddings, nil
}

func (u *weddingUsecase) MyWedding(
	ctx context.Context,
	userID bson.ObjectID,
	weddingID string,
) (*WeddingStats, error) {
	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, weddingID)
	if err != nil {
		return nil, err
	}

	guestCount, err := u.guestRepo.CountGuestsByWedding(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}

	expenses, err := u.expenseRepo.ListExpensesByWedding(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}

	var totalSpent float64
	for _, expense := range expenses {
		totalSpent += expense.Amount
	}

	return &WeddingStats{
		Wedding:    wedding,
		GuestCount: guestCount,
		TotalSpent: totalSpent,
	}, nil
}

func (u *weddingUsecase) UpdateWedding(
	ctx context.Context,
	userID bson.ObjectID,
	id string,
	params repository.UpdateWeddingParams,
) (*model.Wedding, error) {
	wedding, err := u.weddingRepo.UpdateWedding(ctx, id, userID, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWeddingNotFound
		}
		return nil, err
	}

	return wedding, nil
}

// resolveWedding returns the wedding context for a request: the explicit
// weddingId when given (ownership-checked), otherwise the caller's
// most-recently-created wedding.
func resolveWedding(
	ctx context.Context,
	weddingRepo repository.WeddingRepository,
	userID bson.ObjectID,
	weddingID string,
) (*model.Wedding, error) {
	var (
		wedding *model.Wedding
		err     error
	)

	if weddingID != "" {
		wedding, err = weddingRepo.GetOwnedWedding(ctx, weddingID, userID)
	} else {
		wedding, err = weddingRepo.LatestWeddingByUser(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWeddingNotFound
		}
		return nil, err
	}

	return wedding, nil
}
