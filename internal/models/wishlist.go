package models

import "time"

// Wish is a single gift idea on a wish list.
type Wish struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required,max=120"`
	Description  string `json:"description,omitempty" validate:"max=1000"`
	ImageBase64  string `json:"imageBase64,omitempty"`
	PurchaseLink string `json:"purchaseLink,omitempty" validate:"omitempty,url"`
}

// WishList is what a participant would like to receive.
type WishList struct {
	ExchangeID      string    `json:"exchangeId"`
	ParticipantID   string    `json:"participantId"`
	ParticipantName string    `json:"participantName"`
	Items           []*Wish   `json:"items" validate:"dive"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
