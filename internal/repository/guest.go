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

// GuestRepository defines the interface for guest-related database operations.
type GuestRepository interface {
	CreateGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error)
	GetGuest(ctx context.Context, id string) (*model.Guest, error)
	ListGuestsByWedding(ctx context.Context, weddingID bson.ObjectID) ([]*model.Guest, error)
	CountGuestsByWedding(ctx context.Context, weddingID bson.ObjectID) (int64, error)
	UpdateGuest(ctx context.Context, id string, params UpdateGuestParams) (*model.Guest, error)
	DeleteGuestsByWeddings(ctx context.Context, weddingIDs []bson.ObjectID) (int64, error)
}

// UpdateGuestParams defines the optional parameters for updating a guest.
// Only the fields that are not nil will be updated.
type UpdateGuestParams struct {
	Name         *string
	CityVillage  *string
	FamilyCount  *int
	IsInvited    *bool
	ShagunAmount *float64
}

const guestCollection = "guests"

type guestMongoRepository struct {
	db *mongo.Database
}

func NewGuestMongoRepository(db *mongo.Database) GuestRepository {
	return &guestMongoRepository{db: db}
}

func (r *guestMongoRepository) CreateGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error) {
	guest.CreatedAt = time.Now()

	result, err := r.db.Collection(guestCollection).InsertOne(ctx, guest)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		guest.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return guest, nil
}

func (r *guestMongoRepository) GetGuest(ctx context.Context, id string) (*model.Guest, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(guestCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var guest model.Guest
	if err := result.Decode(&guest); err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *guestMongoRepository) ListGuestsByWedding(
	ctx context.Context,
	weddingID bson.ObjectID,
) ([]*model.Guest, error) {
	cursor, err := r.db.Collection(guestCollection).Find(ctx, bson.M{"wedding": weddingID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var guests []*model.Guest
	if err := cursor.All(ctx, &guests); err != nil {
		return nil, err
	}

	return guests, nil
}

func (r *guestMongoRepository) CountGuestsByWedding(
	ctx context.Context,
	weddingID bson.ObjectID,
) (int64, error) {
	return r.db.Collection(guestCollection).CountDocuments(ctx, bson.M{"wedding": weddingID})
}

func (r *guestMongoRepository) UpdateGuest(
	ctx context.Context,
	id string,
	params UpdateGuestParams,
) (*model.Guest, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.CityVillage != nil {
		updateMap["cityVillage"] = *params.CityVillage
	}
	if params.FamilyCount != nil {
		updateMap["familyCount"] = *params.FamilyCount
	}
	if params.IsInvited != nil {
		updateMap["isInvited"] = *params.IsInvited
	}
	if params.ShagunAmount != nil {
		updateMap["shagunAmount"] = *params.ShagunAmount
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no guest fields to update")
	}

	result := r.db.Collection(guestCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var guest model.Guest
	if err := result.Decode(&guest); err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *guestMongoRepository) DeleteGuestsByWeddings(
	ctx context.Context,
	weddingIDs []bson.ObjectID,
) (int64, error) {
	if len(weddingIDs) == 0 {
		return 0, nil
	}

	result, err := r.db.Collection(guestCollection).DeleteMany(ctx, bson.M{
		"wedding": bson.M{"$in": weddingIDs},
	})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
