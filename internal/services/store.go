//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks
package services

import "giftexchange/internal/models"

// Store is the persistence the ExchangeService relies on.
// UpdateExchange must apply fn and write the result in one atomic step.
type Store interface {
	CreateExchange(ex *models.Exchange) error
	GetExchange(id string) (*models.Exchange, error)
	ListExchanges() ([]*models.Exchange, error)
	UpdateExchange(id string, fn func(ex *models.Exchange) error) (*models.Exchange, error)
	DeleteExchange(id string) error
	DeleteAll() error
	PutWishList(list *models.WishList) error
	GetWishList(exchangeID, participantID string) (*models.WishList, error)
	ListWishLists(exchangeID string) ([]*models.WishList, error)
	DeleteWishList(exchangeID, participantID string) error
	CollectGarbage() error
}
