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

// ShagunUsecase defines the interface for shagun-related use cases.
type ShagunUsecase interface {
	AddShagun(ctx context.Context, userID bson.ObjectID, params AddShagunParams) (*model.Shagun, error)
	ListShagun(ctx context.Context, userID bson.ObjectID, weddingID string) ([]*model.Shagun, error)
	UpdateShagun(ctx context.Context, userID bson.ObjectID, shagunID string, params repository.UpdateShagunParams) (*model.Shagun, error)
	DeleteShagun(ctx context.Context, userID bson.ObjectID, shagunID string) error
}

// AddShagunParams defines the parameters for adding a shagun entry.
type AddShagunParams struct {
	WeddingID string
	Name      string
	Amount    float64
	City      string
	Gift      string
	Contact   string
	Wishes    string
	Type      string
	Date      time.Time
}

var ErrShagunNotFound = errors.New("shagun not found")

type shagunUsecase struct {
	shagunRepo  repository.ShagunRepository
	weddingRepo repository.WeddingRepository
}

func NewShagunUsecase(
	shagunRepo repository.ShagunRepository,
	weddingRepo repository.WeddingRepository,
) ShagunUsecase {
	return &shagunUsecase{
		shagunRepo:  shagunRepo,
		weddingRepo: weddingRepo,
	}
}

func (u *shagunUsecase) AddShagun(
	ctx context.Context,
	userID bson.ObjectID,
	params AddShagunParams,
) (*model.Shagun, error) {
	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, params.WeddingID)
	if err != nil {
		return nil, err
	}

	return u.shagunRepo.CreateShagun(ctx, &model.Shagun{
		Wedding: wedding.ID,
		Name:    params.Name,
		Amount:  params.Amount,
		City:    params.City,
		Gift:    params.Gift,
		Contact: params.Contact,
		Wishes:  params.Wishes,
		Type:    params.Type,
		Date:    params.Date,
	})
}

func (u *shagunUsecase) ListShagun(
	ctx context.Context,
	userID bson.ObjectID,
	weddingID string,
) ([]*model.Shagun, error) {
	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, weddingID)
	if err != nil {
		return nil, err
	}

	entries, err := u.shagunRepo.ListShagunByWedding(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.Shagun{}
	}

	return entries, nil
}

func (u *shagunUsecase) UpdateShagun(
	ctx context.Context,
	userID bson.ObjectID,
	shagunID string,
	params repository.UpdateShagunParams,
) (*model.Shagun, error) {
	if err := u.checkOwnership(ctx, userID, shagunID); err != nil {
		return nil, err
	}

	updated, err := u.shagunRepo.UpdateShagun(ctx, shagunID, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrShagunNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (u *shagunUsecase) DeleteShagun(ctx context.Context, userID bson.ObjectID, shagunID string) error {
	if err := u.checkOwnership(ctx, userID, shagunID); err != nil {
		return err
	}

	if err := u.shagunRepo.DeleteShagun(ctx, shagunID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrShagunNotFound
		}
		return err
	}

	return nil
}

func (u *shagunUsecase) checkOwnership(ctx context.Context, userID bson.ObjectID, shagunID string) error {
	entry, err := u.shagunRepo.GetShagun(ctx, shagunID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrShagunNotFound
		}
		return err
	}

	if _, err := u.weddingRepo.GetOwnedWedding(ctx, entry.Wedding.Hex(), userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrShagunNotFound
		}
		return err
	}

	return nil
}
