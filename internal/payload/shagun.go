package payload

import "time"

type AddShagunRequest struct {
	WeddingID string    `json:"weddingId"`
	Name      string    `json:"name"    validate:"required"`
	Amount    float64   `json:"amount"  validate:"required,gt=0"`
	City      string    `json:"city"`
	Gift      string    `json:"gift"`
	Contact   string    `json:"contact"`
	Wishes    string    `json:"wishes"`
	Type      string    `json:"type"    validate:"omitempty,oneof=received given"`
	Date      time.Time `json:"date"`
}

type UpdateShagunRequest struct {
	Name    *string    `json:"name"`
	Amount  *float64   `json:"amount" validate:"omitempty,gt=0"`
	City    *string    `json:"city"`
	Gift    *string    `json:"gift"`
	Contact *string    `json:"contact"`
	Wishes  *string    `json:"wishes"`
	Type    *string    `json:"type"   validate:"omitempty,oneof=received given"`
	Date    *time.Time `json:"date"`
}
