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

// ShagunRepository defines the interface for shagun-related database operations.
type ShagunRepository interface {
	CreateShagun(ctx context.Context, shagun *model.Shagun) (*model.Shagun, error)
	GetShagun(ctx context.Context, id string) (*model.Shagun, error)

	// ListShagunByWedding returns entries for a wedding, date descending.
	ListShagunByWedding(ctx context.Context, weddingID bson.ObjectID) ([]*model.Shagun, error)

	UpdateShagun(ctx context.Context, id string, params UpdateShagunParams) (*model.Shagun, error)
	DeleteShagun(ctx context.Context, id string) error
	DeleteShagunByWeddings(ctx context.Context, weddingIDs []bson.ObjectID) (int64, error)
}

// UpdateShagunParams defines the optional parameters for updating a shagun entry.
// Only the fields that are not nil will be updated.
type UpdateShagunParams struct {
	Name    *string
	Amount  *float64
	City    *string
	Gift    *string
	Contact *string
	Wishes  *string
	Type    *string
	Date    *time.Time
}

const shagunCollection = "shagun"

type shagunMongoRepository struct {
	db *mongo.Database
}

func NewShagunMongoRepository(db *mongo.Database) ShagunRepository {
	return &shagunMongoRepository{db: db}
}

func (r *shagunMongoRepository) CreateShagun(ctx context.Context, shagun *model.Shagun) (*model.Shagun, error) {
	if shagun.Date.IsZero() {
		shagun.Date = time.Now()
	}
	if shagun.Type == "" {
		shagun.Type = model.ShagunReceived
	}

	result, err := r.db.Collection(shagunCollection).InsertOne(ctx, shagun)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		shagun.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return shagun, nil
}

func (r *shagunMongoRepository) GetShagun(ctx context.Context, id string) (*model.Shagun, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(shagunCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var shagun model.Shagun
	if err := result.Decode(&shagun); err != nil {
		return nil, err
	}

	return &shagun, nil
}

func (r *shagunMongoRepository) ListShagunByWedding(
	ctx context.Context,
	weddingID bson.ObjectID,
) ([]*model.Shagun, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.db.Collection(shagunCollection).Find(ctx, bson.M{"wedding": weddingID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.Shagun
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *shagunMongoRepository) UpdateShagun(
	ctx context.Context,
	id string,
	params UpdateShagunParams,
) (*model.Shagun, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Amount != nil {
		updateMap["amount"] = *params.Amount
	}
	if params.City != nil {
		updateMap["city"] = *params.City
	}
	if params.Gift != nil {
		updateMap["gift"] = *params.Gift
	}
	if params.Contact != nil {
		updateMap["contact"] = *params.Contact
	}
	if params.Wishes != nil {
		updateMap["wishes"] = *params.Wishes
	}
	if params.Type != nil {
		updateMap["type"] = *params.Type
	}
	if params.Date != nil {
		updateMap["date"] = *params.Date
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no shagun fields to update")
	}

	result := r.db.Collection(shagunCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var shagun model.Shagun
	if err := result.Decode(&shagun); err != nil {
		return nil, err
	}

	return &shagun, nil
}

func (r *shagunMongoRepository) DeleteShagun(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.db.Collection(shagunCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *shagunMongoRepository) DeleteShagunByWeddings(
	ctx context.Context,
	weddingIDs []bson.ObjectID,
) (int64, error) {
	if len(weddingIDs) == 0 {
		return 0, nil
	}

	result, err := r.db.Collection(shagunCollection).DeleteMany(ctx, bson.M{
		"wedding": bson.M{"$in": weddingIDs},
	})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
