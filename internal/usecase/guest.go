package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
)

// GuestUsecase defines the interface for guest-related use cases.
type GuestUsecase interface {
	AddGuest(ctx context.Context, userID bson.ObjectID, params AddGuestParams) (*model.Guest, error)
	ListGuests(ctx context.Context, userID bson.ObjectID, weddingID string) ([]*model.Guest, error)
	UpdateGuest(ctx context.Context, userID bson.ObjectID, guestID string, params repository.UpdateGuestParams) (*model.Guest, error)
}

// AddGuestParams defines the parameters for adding a guest.
type AddGuestParams struct {
	WeddingID   string
	Name        string
	CityVillage string
	FamilyCount int
}

var ErrGuestNotFound = errors.New("guest not found")

type guestUsecase struct {
	guestRepo   repository.GuestRepository
	weddingRepo repository.WeddingRepository
}

func NewGuestUsecase(
	guestRepo repository.GuestRepository,
	weddingRepo repository.WeddingRepository,
) GuestUsecase {
	return &guestUsecase{
		guestRepo:   guestRepo,
		weddingRepo: weddingRepo,
	}
}

func (u *guestUsecase) AddGuest(
	ctx context.Context,
	userID bson.ObjectID,
	params AddGuestParams,
) (*model.Guest, error) {
	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, params.WeddingID)
	if err != nil {
		return nil, err
	}

	familyCount := params.FamilyCount
	if familyCount < 1 {
		familyCount = 1
	}

	return u.guestRepo.CreateGuest(ctx, &model.Guest{
		Wedding:     wedding.ID,
		Name:        params.Name,
		CityVillage: params.CityVillage,
		FamilyCount: familyCount,
	})
}

func (u *guestUsecase) ListGuests(
	ctx context.Context,
	userID bson.ObjectID,
	weddingID string,
) ([]*model.Guest, error) {
	wedding, err := resolveWedding(ctx, u.weddingRepo, userID, weddingID)
	if err != nil {
		return nil, err
	}

	guests, err := u.guestRepo.ListGuestsByWedding(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if guests == nil {
		guests = []*model.Guest{}
	}

	return guests, nil
}

func (u *guestUsecase) UpdateGuest(
	ctx context.Context,
	userID bson.ObjectID,
	guestID string,
	params repository.UpdateGuestParams,
) (*model.Guest, error) {
	guest, err := u.guestRepo.GetGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	// A forged id pointing at another user's wedding must look identical
	// to a missing guest.
	if _, err := u.weddingRepo.GetOwnedWedding(ctx, guest.Wedding.Hex(), userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	updated, err := u.guestRepo.UpdateGuest(ctx, guestID, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	return updated, nil
}
