package payload

import "time"

type AddExpenseRequest struct {
	WeddingID  string    `json:"weddingId"`
	Title      string    `json:"title"      validate:"required"`
	Amount     float64   `json:"amount"     validate:"required,gt=0"`
	PaidAmount float64   `json:"paidAmount" validate:"omitempty,gte=0"`
	Category   string    `json:"category"`
	Date       time.Time `json:"date"`
}

type UpdateExpenseRequest struct {
	Title      *string    `json:"title"`
	Amount     *float64   `json:"amount"     validate:"omitempty,gt=0"`
	PaidAmount *float64   `json:"paidAmount" validate:"omitempty,gte=0"`
	Category   *string    `json:"category"`
	Date       *time.Time `json:"date"`
}
