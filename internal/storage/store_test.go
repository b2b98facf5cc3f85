package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"giftexchange/internal/models"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStore(db)
}

func newExchange(id string, at time.Time) *models.Exchange {
	return &models.Exchange{
		ID:        id,
		Name:      "exchange " + id,
		CreatedAt: at,
		Participants: []*models.Participant{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
		Exclusions: map[string][]string{},
	}
}

func TestBadgerStore_CreateAndGet(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	at := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	req.NoError(store.CreateExchange(newExchange("x1", at)))
	req.ErrorIs(store.CreateExchange(newExchange("x1", at)), ErrAlreadyExists)

	got, err := store.GetExchange("x1")
	req.NoError(err)
	req.Equal("exchange x1", got.Name)
	req.Len(got.Participants, 2)
	req.True(at.Equal(got.CreatedAt))

	_, err = store.GetExchange("missing")
	req.ErrorIs(err, ErrNotFound)
}

func TestBadgerStore_ListExchangesOldestFirst(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	at := time.Now().UTC()

	req.NoError(store.CreateExchange(newExchange("b", at.Add(time.Hour))))
	req.NoError(store.CreateExchange(newExchange("a", at.Add(2*time.Hour))))
	req.NoError(store.CreateExchange(newExchange("c", at)))

	exchanges, err := store.ListExchanges()
	req.NoError(err)
	req.Len(exchanges, 3)
	req.Equal("c", exchanges[0].ID)
	req.Equal("b", exchanges[1].ID)
	req.Equal("a", exchanges[2].ID)
}

func TestBadgerStore_UpdateExchange(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	req.NoError(store.CreateExchange(newExchange("x1", time.Now())))

	updated, err := store.UpdateExchange("x1", func(ex *models.Exchange) error {
		ex.Results = map[string]string{"a": "b", "b": "a"}
		return nil
	})
	req.NoError(err)
	req.Equal("b", updated.Results["a"])

	boom := errors.New("boom")
	_, err = store.UpdateExchange("x1", func(ex *models.Exchange) error {
		ex.Results = nil
		return boom
	})
	req.ErrorIs(err, boom)

	got, err := store.GetExchange("x1")
	req.NoError(err)
	req.Equal(map[string]string{"a": "b", "b": "a"}, got.Results)

	_, err = store.UpdateExchange("missing", func(*models.Exchange) error { return nil })
	req.ErrorIs(err, ErrNotFound)
}

func TestBadgerStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	req.NoError(store.CreateExchange(newExchange("x1", time.Now())))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.UpdateExchange("x1", func(ex *models.Exchange) error {
				ex.Exclusions["a"] = append(ex.Exclusions["a"], "b")
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := store.GetExchange("x1")
	req.NoError(err)
	req.NotEmpty(got.Exclusions["a"])
	for _, receiver := range got.Exclusions["a"] {
		req.Equal("b", receiver)
	}
}

func TestBadgerStore_WishLists(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	req.NoError(store.CreateExchange(newExchange("x1", time.Now())))
	req.NoError(store.CreateExchange(newExchange("x2", time.Now())))

	req.NoError(store.PutWishList(&models.WishList{ExchangeID: "x1", ParticipantID: "a", Items: []*models.Wish{{ID: "w1", Name: "Socks"}}}))
	req.NoError(store.PutWishList(&models.WishList{ExchangeID: "x1", ParticipantID: "b"}))
	req.NoError(store.PutWishList(&models.WishList{ExchangeID: "x2", ParticipantID: "a"}))

	list, err := store.GetWishList("x1", "a")
	req.NoError(err)
	req.Equal("Socks", list.Items[0].Name)

	lists, err := store.ListWishLists("x1")
	req.NoError(err)
	req.Len(lists, 2)

	req.NoError(store.DeleteWishList("x1", "b"))
	_, err = store.GetWishList("x1", "b")
	req.ErrorIs(err, ErrNotFound)
	req.NoError(store.DeleteWishList("x1", "never-existed"))

	req.ErrorIs(store.PutWishList(&models.WishList{ExchangeID: "x1", ParticipantID: "zed"}), ErrUnknownParticipant)
	req.ErrorIs(store.PutWishList(&models.WishList{ExchangeID: "missing", ParticipantID: "a"}), ErrNotFound)
}

func TestBadgerStore_PutWishListRacingParticipantRemoval(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	for round := 0; round < 20; round++ {
		id := fmt.Sprintf("x%d", round)
		req.NoError(store.CreateExchange(newExchange(id, time.Now())))

		var removeErr error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.PutWishList(&models.WishList{ExchangeID: id, ParticipantID: "b"})
		}()
		go func() {
			defer wg.Done()
			_, removeErr = store.UpdateExchange(id, func(ex *models.Exchange) error {
				ex.Participants = ex.Participants[:1]
				return nil
			})
			if removeErr == nil {
				removeErr = store.DeleteWishList(id, "b")
			}
		}()
		wg.Wait()
		req.NoError(removeErr)

		lists, err := store.ListWishLists(id)
		req.NoError(err)
		req.Empty(lists, "round %d", round)
	}
}

func TestBadgerStore_DeleteExchangeCascadesWishLists(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	req.NoError(store.CreateExchange(newExchange("x1", time.Now())))
	req.NoError(store.CreateExchange(newExchange("x10", time.Now())))
	req.NoError(store.PutWishList(&models.WishList{ExchangeID: "x1", ParticipantID: "a"}))
	req.NoError(store.PutWishList(&models.WishList{ExchangeID: "x10", ParticipantID: "a"}))

	req.NoError(store.DeleteExchange("x1"))
	req.ErrorIs(store.DeleteExchange("x1"), ErrNotFound)

	_, err := store.GetWishList("x1", "a")
	req.ErrorIs(err, ErrNotFound)
	_, err = store.GetWishList("x10", "a")
	req.NoError(err)
}

func TestBadgerStore_DeleteAll(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	req.NoError(store.CreateExchange(newExchange("x1", time.Now())))
	req.NoError(store.PutWishList(&models.WishList{ExchangeID: "x1", ParticipantID: "a"}))

	req.NoError(store.DeleteAll())

	exchanges, err := store.ListExchanges()
	req.NoError(err)
	req.Empty(exchanges)
	lists, err := store.ListWishLists("x1")
	req.NoError(err)
	req.Empty(lists)
	req.NoError(store.CollectGarbage())
}
