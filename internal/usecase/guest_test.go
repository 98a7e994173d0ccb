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

type guestFixture struct {
	guestRepo   *fakeGuestRepo
	weddingRepo *fakeWeddingRepo
	usecase     GuestUsecase
	userID      bson.ObjectID
	wedding     *model.Wedding
}

func newGuestFixture(t *testing.T) *guestFixture {
	t.Helper()

	f := &guestFixture{
		guestRepo:   newFakeGuestRepo(),
		weddingRepo: newFakeWeddingRepo(),
		userID:      bson.NewObjectID(),
	}
	f.usecase = NewGuestUsecase(f.guestRepo, f.weddingRepo)

	wedding, err := f.weddingRepo.CreateWedding(context.Background(), &model.Wedding{
		User: f.userID, GroomName: "Arjun", BrideName: "Priya", Date: time.Now(),
	})
	require.NoError(t, err)
	f.wedding = wedding

	return f
}

func TestAddGuest(t *testing.T) {
	f := newGuestFixture(t)
	ctx := context.Background()

	guest, err := f.usecase.AddGuest(ctx, f.userID, AddGuestParams{
		Name:        "Sharma Ji",
		CityVillage: "Jaipur",
		FamilyCount: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, f.wedding.ID, guest.Wedding)
	assert.Equal(t, 4, guest.FamilyCount)
}

func TestAddGuest_FamilyCountFloor(t *testing.T) {
	f := newGuestFixture(t)

	guest, err := f.usecase.AddGuest(context.Background(), f.userID, AddGuestParams{Name: "Solo"})
	require.NoError(t, err)
	assert.Equal(t, 1, guest.FamilyCount)
}

func TestAddGuest_NoWedding(t *testing.T) {
	f := newGuestFixture(t)

	_, err := f.usecase.AddGuest(context.Background(), bson.NewObjectID(), AddGuestParams{Name: "X"})
	assert.ErrorIs(t, err, ErrWeddingNotFound)
}

func TestListGuests(t *testing.T) {
	f := newGuestFixture(t)
	ctx := context.Background()

	empty, err := f.usecase.ListGuests(ctx, f.userID, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.usecase.AddGuest(ctx, f.userID, AddGuestParams{Name: "A"})
	require.NoError(t, err)
	_, err = f.usecase.AddGuest(ctx, f.userID, AddGuestParams{Name: "B"})
	require.NoError(t, err)

	guests, err := f.usecase.ListGuests(ctx, f.userID, f.wedding.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}

func TestUpdateGuest(t *testing.T) {
	f := newGuestFixture(t)
	ctx := context.Background()

	guest, err := f.usecase.AddGuest(ctx, f.userID, AddGuestParams{Name: "Sharma Ji", FamilyCount: 2})
	require.NoError(t, err)

	invited := true
	amount := 1100.0
	updated, err := f.usecase.UpdateGuest(ctx, f.userID, guest.ID.Hex(), repository.UpdateGuestParams{
		IsInvited:    &invited,
		ShagunAmount: &amount,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsInvited)
	assert.Equal(t, 1100.0, updated.ShagunAmount)
	assert.Equal(t, "Sharma Ji", updated.Name)
}

func TestUpdateGuest_OwnershipEnforced(t *testing.T) {
	f := newGuestFixture(t)
	ctx := context.Background()

	guest, err := f.usecase.AddGuest(ctx, f.userID, AddGuestParams{Name: "Sharma Ji"})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = f.usecase.UpdateGuest(ctx, bson.NewObjectID(), guest.ID.Hex(), repository.UpdateGuestParams{Name: &name})
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = f.usecase.UpdateGuest(ctx, f.userID, bson.NewObjectID().Hex(), repository.UpdateGuestParams{Name: &name})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}
