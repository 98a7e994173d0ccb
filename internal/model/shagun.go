package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Shagun entry directions.
const (
	ShagunReceived = "received"
	ShagunGiven    = "given"
)

// Shagun is a cash-gift ledger entry scoped to a wedding. Amount is
// numeric; currency formatting is a client concern.
type Shagun struct {
	ID      bson.ObjectID `bson:"_id,omitempty"     json:"_id"`
	Wedding bson.ObjectID `bson:"wedding"           json:"wedding"`
	Name    string        `bson:"name"              json:"name"`
	Amount  float64       `bson:"amount"            json:"amount"`
	City    string        `bson:"city,omitempty"    json:"city,omitempty"`
	Gift    string        `bson:"gift,omitempty"    json:"gift,omitempty"`
	Contact string        `bson:"contact,omitempty" json:"contact,omitempty"`
	Wishes  string        `bson:"wishes,omitempty"  json:"wishes,omitempty"`
	Type    string        `bson:"type"              json:"type"`
	Date    time.Time     `bson:"date"              json:"date"`
}
