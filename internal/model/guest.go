package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Guest is an invitation-list entry scoped to a wedding.
type Guest struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Wedding     bson.ObjectID `bson:"wedding"       json:"wedding"`
	Name        string        `bson:"name"          json:"name"`
	CityVillage string        `bson:"cityVillage"   json:"cityVillage"`
	FamilyCount int           `bson:"familyCount"   json:"familyCount"`
	IsInvited   bool          `bson:"isInvited"     json:"isInvited"`
	// ShagunAmount is a legacy field kept for data compatibility; gift
	// amounts live in the shagun collection.
	ShagunAmount float64   `bson:"shagunAmount" json:"shagunAmount"`
	CreatedAt    time.Time `bson:"createdAt"    json:"createdAt"`
}
