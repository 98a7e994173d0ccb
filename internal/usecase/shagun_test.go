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

type shagunFixture struct {
	shagunRepo  *fakeShagunRepo
	weddingRepo *fakeWeddingRepo
	usecase     ShagunUsecase
	userID      bson.ObjectID
	wedding     *model.Wedding
}

func newShagunFixture(t *testing.T) *shagunFixture {
	t.Helper()

	f := &shagunFixture{
		shagunRepo:  newFakeShagunRepo(),
		weddingRepo: newFakeWeddingRepo(),
		userID:      bson.NewObjectID(),
	}
	f.usecase = NewShagunUsecase(f.shagunRepo, f.weddingRepo)

	wedding, err := f.weddingRepo.CreateWedding(context.Background(), &model.Wedding{
		User: f.userID, GroomName: "Arjun", BrideName: "Priya", Date: time.Now(),
	})
	require.NoError(t, err)
	f.wedding = wedding

	return f
}

func TestAddShagun(t *testing.T) {
	f := newShagunFixture(t)

	entry, err := f.usecase.AddShagun(context.Background(), f.userID, AddShagunParams{
		Name:   "Verma Uncle",
		Amount: 1100,
		City:   "Delhi",
		Wishes: "Best wishes",
	})
	require.NoError(t, err)
	assert.Equal(t, f.wedding.ID, entry.Wedding)
	assert.Equal(t, 1100.0, entry.Amount)
	assert.Equal(t, model.ShagunReceived, entry.Type, "direction defaults to received")
}

func TestAddShagun_NoWedding(t *testing.T) {
	f := newShagunFixture(t)

	_, err := f.usecase.AddShagun(context.Background(), bson.NewObjectID(), AddShagunParams{
		Name: "X", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrWeddingNotFound)
}

func TestListShagun_DateDescending(t *testing.T) {
	f := newShagunFixture(t)
	ctx := context.Background()

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now()

	_, err := f.usecase.AddShagun(ctx, f.userID, AddShagunParams{Name: "Old", Amount: 100, Date: older})
	require.NoError(t, err)
	_, err = f.usecase.AddShagun(ctx, f.userID, AddShagunParams{Name: "New", Amount: 200, Date: newer})
	require.NoError(t, err)

	entries, err := f.usecase.ListShagun(ctx, f.userID, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "New", entries[0].Name)
}

func TestListShagun_NoWedding(t *testing.T) {
	f := newShagunFixture(t)

	_, err := f.usecase.ListShagun(context.Background(), bson.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrWeddingNotFound)
}

func TestUpdateShagun(t *testing.T) {
	f := newShagunFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddShagun(ctx, f.userID, AddShagunParams{Name: "Verma Uncle", Amount: 1100})
	require.NoError(t, err)

	amount := 2100.0
	direction := model.ShagunGiven
	updated, err := f.usecase.UpdateShagun(ctx, f.userID, entry.ID.Hex(), repository.UpdateShagunParams{
		Amount: &amount,
		Type:   &direction,
	})
	require.NoError(t, err)
	assert.Equal(t, 2100.0, updated.Amount)
	assert.Equal(t, model.ShagunGiven, updated.Type)
	assert.Equal(t, "Verma Uncle", updated.Name)
}

func TestDeleteShagun(t *testing.T) {
	f := newShagunFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddShagun(ctx, f.userID, AddShagunParams{Name: "Verma Uncle", Amount: 1100})
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeleteShagun(ctx, f.userID, entry.ID.Hex()))

	assert.ErrorIs(t, f.usecase.DeleteShagun(ctx, f.userID, entry.ID.Hex()), ErrShagunNotFound)
}

func TestShagunOwnershipEnforced(t *testing.T) {
	f := newShagunFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddShagun(ctx, f.userID, AddShagunParams{Name: "Verma Uncle", Amount: 1100})
	require.NoError(t, err)

	stranger := bson.NewObjectID()
	name := "Hijacked"

	_, err = f.usecase.UpdateShagun(ctx, stranger, entry.ID.Hex(), repository.UpdateShagunParams{Name: &name})
	assert.ErrorIs(t, err, ErrShagunNotFound)

	assert.ErrorIs(t, f.usecase.DeleteShagun(ctx, stranger, entry.ID.Hex()), ErrShagunNotFound)
}
