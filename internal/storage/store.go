// Package storage persists exchanges and wish lists in BadgerDB.
//
// Keys:
//
//	exchange:{exchangeID}                 -> JSON models.Exchange
//	wishes:{exchangeID}:{participantID}   -> JSON models.WishList
//
// An exchange, including its results and reveal records, is a single value, so
// replacing results inside UpdateExchange is observed atomically by readers.
package storage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"giftexchange/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrUnknownParticipant = errors.New("participant not in exchange")
)

const (
	exchangePrefix = "exchange:"
	wishesPrefix   = "wishes:"

	// conflictRetries is how many times a transaction that lost a write
	// conflict is replayed.
	conflictRetries = 5

	gcDiscardRatio = 0.5
)

type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func exchangeKey(id string) []byte {
	return []byte(exchangePrefix + id)
}

func wishListPrefix(exchangeID string) []byte {
	return []byte(wishesPrefix + exchangeID + ":")
}

func wishListKey(exchangeID, participantID string) []byte {
	return []byte(wishesPrefix + exchangeID + ":" + participantID)
}

// CreateExchange stores a new exchange. It fails with ErrAlreadyExists when the ID is taken.
func (s *BadgerStore) CreateExchange(ex *models.Exchange) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := exchangeKey(ex.ID)
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setJSON(txn, key, ex)
	})
}

// GetExchange loads one exchange.
func (s *BadgerStore) GetExchange(id string) (*models.Exchange, error) {
	var ex models.Exchange
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, exchangeKey(id), &ex)
	})
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// ListExchanges returns every exchange, oldest first.
func (s *BadgerStore) ListExchanges() ([]*models.Exchange, error) {
	var exchanges []*models.Exchange
	err := s.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, []byte(exchangePrefix), func(val []byte) error {
			var ex models.Exchange
			if err := json.Unmarshal(val, &ex); err != nil {
				return err
			}
			exchanges = append(exchanges, &ex)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(exchanges, func(a, b *models.Exchange) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return exchanges, nil
}

// UpdateExchange applies fn to the stored exchange and writes the result back in
// the same transaction. fn may run more than once when the transaction is
// replayed after a conflict; each run receives a freshly loaded copy. If fn
// returns an error nothing is written.
func (s *BadgerStore) UpdateExchange(id string, fn func(ex *models.Exchange) error) (*models.Exchange, error) {
	var updated *models.Exchange
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			var ex models.Exchange
			if err := getJSON(txn, exchangeKey(id), &ex); err != nil {
				return err
			}
			if err := fn(&ex); err != nil {
				return err
			}
			updated = &ex
			return setJSON(txn, exchangeKey(id), &ex)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExchange removes an exchange together with its wish lists.
func (s *BadgerStore) DeleteExchange(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(exchangeKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		keys, err := collectKeys(txn, wishListPrefix(id))
		if err != nil {
			return err
		}
		keys = append(keys, exchangeKey(id))
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAll removes every exchange and wish list.
func (s *BadgerStore) DeleteAll() error {
	return s.db.DropPrefix([]byte(exchangePrefix), []byte(wishesPrefix))
}

// PutWishList creates or replaces a wish list. The exchange is read in the same
// transaction and the write fails with ErrUnknownParticipant when it no longer
// lists the participant, so a save racing a removal cannot leave an orphan.
func (s *BadgerStore) PutWishList(list *models.WishList) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			var ex models.Exchange
			if err := getJSON(txn, exchangeKey(list.ExchangeID), &ex); err != nil {
				return err
			}
			if ex.Participant(list.ParticipantID) == nil {
				return ErrUnknownParticipant
			}
			return setJSON(txn, wishListKey(list.ExchangeID, list.ParticipantID), list)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	return err
}

// GetWishList loads the wish list of one participant.
func (s *BadgerStore) GetWishList(exchangeID, participantID string) (*models.WishList, error) {
	var list models.WishList
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, wishListKey(exchangeID, participantID), &list)
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListWishLists returns every wish list of an exchange.
func (s *BadgerStore) ListWishLists(exchangeID string) ([]*models.WishList, error) {
	var lists []*models.WishList
	err := s.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, wishListPrefix(exchangeID), func(val []byte) error {
			var list models.WishList
			if err := json.Unmarshal(val, &list); err != nil {
				return err
			}
			lists = append(lists, &list)
			return nil
		})
	})
	return lists, err
}

// DeleteWishList removes a participant's wish list. A missing list is not an error.
func (s *BadgerStore) DeleteWishList(exchangeID, participantID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(wishListKey(exchangeID, participantID))
	})
}

// CollectGarbage rewrites value log files until badger reports nothing left to
// reclaim.
func (s *BadgerStore) CollectGarbage() error {
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set(key, data)
}

func scanJSON(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

func collectKeys(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}
