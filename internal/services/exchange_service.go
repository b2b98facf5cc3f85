package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/logger"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"giftexchange/internal/matcher"
	"giftexchange/internal/models"
	"giftexchange/internal/storage"
)

// ExchangeService coordinates exchanges, their participants and exclusions, and
// the draw that turns them into results.
type ExchangeService struct {
	store          Store
	validate       *validator.Validate
	matcherOptions []matcher.Option
	maxImageBytes  int
	now            func() time.Time
}

// Option configures an ExchangeService.
type Option func(*ExchangeService)

// WithMatcherOptions sets the options used to build the Matcher for every draw.
func WithMatcherOptions(opts ...matcher.Option) Option {
	return func(s *ExchangeService) {
		s.matcherOptions = opts
	}
}

// WithMaxImageBytes overrides DefaultMaxImageBytes.
func WithMaxImageBytes(n int) Option {
	return func(s *ExchangeService) {
		s.maxImageBytes = n
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ExchangeService) {
		s.now = now
	}
}

// NewExchangeService creates and initializes a new ExchangeService.
func NewExchangeService(store Store, opts ...Option) *ExchangeService {
	s := &ExchangeService{
		store:         store,
		validate:      validator.New(),
		maxImageBytes: DefaultMaxImageBytes,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reveal is what a giver sees when opening their result.
type Reveal struct {
	ExchangeName  string              `json:"exchangeName"`
	Giver         *models.Participant `json:"giver"`
	Receiver      *models.Participant `json:"receiver"`
	AlreadyOpened bool                `json:"alreadyOpened"`
	OpenedAt      time.Time           `json:"openedAt"`
}

// CreateExchange creates an empty exchange.
func (s *ExchangeService) CreateExchange(name string) (*models.Exchange, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	ex := &models.Exchange{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    s.now().UTC(),
		Participants: []*models.Participant{},
		Exclusions:   map[string][]string{},
	}
	if err := s.store.CreateExchange(ex); err != nil {
		return nil, fmt.Errorf("create exchange: %w", err)
	}
	logger.Infof("Created exchange %s (%q)", ex.ID, ex.Name)
	return ex, nil
}

// ListExchanges returns a summary of every exchange, oldest first.
func (s *ExchangeService) ListExchanges() ([]models.ExchangeSummary, error) {
	exchanges, err := s.store.ListExchanges()
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	return lo.Map(exchanges, func(ex *models.Exchange, _ int) models.ExchangeSummary {
		return ex.Summary()
	}), nil
}

// GetExchange returns one exchange.
func (s *ExchangeService) GetExchange(exchangeID string) (*models.Exchange, error) {
	ex, err := s.store.GetExchange(exchangeID)
	if err != nil {
		return nil, s.storeError(exchangeID, err)
	}
	return ex, nil
}

// DeleteExchange removes an exchange and its wish lists.
func (s *ExchangeService) DeleteExchange(exchangeID string) error {
	if err := s.store.DeleteExchange(exchangeID); err != nil {
		return s.storeError(exchangeID, err)
	}
	logger.Infof("Deleted exchange %s", exchangeID)
	return nil
}

// ClearAll removes every exchange.
func (s *ExchangeService) ClearAll() error {
	if err := s.store.DeleteAll(); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	logger.Warningf("Cleared all exchanges")
	return nil
}

// AddParticipant adds a new participant to an exchange.
func (s *ExchangeService) AddParticipant(exchangeID, name string) (*models.Participant, error) {
	added, err := s.AddParticipants(exchangeID, []string{name})
	if err != nil {
		return nil, err
	}
	return added[0], nil
}

// AddParticipants adds several participants in one step. Blank names are
// rejected before anything is stored.
func (s *ExchangeService) AddParticipants(exchangeID string, names []string) ([]*models.Participant, error) {
	names = lo.Map(names, func(name string, _ int) string { return strings.TrimSpace(name) })
	if len(names) == 0 || slices.Contains(names, "") {
		return nil, ErrEmptyName
	}

	var added []*models.Participant
	_, err := s.store.UpdateExchange(exchangeID, func(ex *models.Exchange) error {
		added = lo.Map(names, func(name string, _ int) *models.Participant {
			return &models.Participant{ID: uuid.NewString(), Name: name}
		})
		ex.Participants = append(ex.Participants, added...)
		return nil
	})
	if err != nil {
		return nil, s.storeError(exchangeID, err)
	}
	logger.Infof("Added %d participant(s) to exchange %s", len(added), exchangeID)
	return added, nil
}

// RemoveParticipant deletes a participant. The participant disappears from every
// exclusion list, existing results and reveal records are cleared because they
// reference the participant, and the participant's wish list is deleted.
func (s *ExchangeService) RemoveParticipant(exchangeID, participantID string) error {
	_, err := s.store.UpdateExchange(exchangeID, func(ex *models.Exchange) error {
		if ex.Participant(participantID) == nil {
			return ErrParticipantNotFound
		}
		ex.Participants = lo.Filter(ex.Participants, func(p *models.Participant, _ int) bool {
			return p.ID != participantID
		})

		delete(ex.Exclusions, participantID)
		for giver, receivers := range ex.Exclusions {
			receivers = lo.Without(receivers, participantID)
			if len(receivers) == 0 {
				delete(ex.Exclusions, giver)
				continue
			}
			ex.Exclusions[giver] = receivers
		}

		if ex.Drawn() {
			clearResults(ex)
		}
		return nil
	})
	if err != nil {
		return s.storeError(exchangeID, err)
	}

	if err := s.store.DeleteWishList(exchangeID, participantID); err != nil {
		return fmt.Errorf("delete wish list: %w", err)
	}
	logger.Infof("Removed participant %s from exchange %s", participantID, exchangeID)
	return nil
}

// ToggleExclusion adds receiverID to giverID's exclusions, or removes it if it is
// already there, and reports whether the pair is now excluded. Adding is refused
// with ErrTooManyExclusions when it would leave the giver with no one to give to.
func (s *ExchangeService) ToggleExclusion(exchangeID, giverID, receiverID string) (bool, error) {
	if giverID == receiverID {
		return false, ErrInvalidExclusion
	}

	var excluded bool
	_, err := s.store.UpdateExchange(exchangeID, func(ex *models.Exchange) error {
		if ex.Participant(giverID) == nil || ex.Participant(receiverID) == nil {
			return ErrParticipantNotFound
		}
		if ex.Exclusions == nil {
			ex.Exclusions = map[string][]string{}
		}

		current := ex.Exclusions[giverID]
		if lo.Contains(current, receiverID) {
			current = lo.Without(current, receiverID)
			if len(current) == 0 {
				delete(ex.Exclusions, giverID)
			} else {
				ex.Exclusions[giverID] = current
			}
			excluded = false
			return nil
		}

		if len(current) >= len(ex.Participants)-2 {
			return ErrTooManyExclusions
		}
		ex.Exclusions[giverID] = append(current, receiverID)
		excluded = true
		return nil
	})
	if err != nil {
		return false, s.storeError(exchangeID, err)
	}
	return excluded, nil
}

// Draw runs the Matcher over the exchange and stores the new results, replacing
// previous ones and clearing reveal records, in a single store update. When no
// valid assignment is found the stored exchange is left untouched and
// ErrNoValidAssignment is returned.
func (s *ExchangeService) Draw(exchangeID string) (matcher.Assignment, error) {
	var assignment matcher.Assignment
	_, err := s.store.UpdateExchange(exchangeID, func(ex *models.Exchange) error {
		if len(ex.Participants) < 2 {
			return ErrNotEnoughParticipants
		}

		a, ok := matcher.New(s.matcherOptions...).Match(ex.ParticipantIDs(), ex.Exclusions)
		if !ok {
			return ErrNoValidAssignment
		}

		drawnAt := s.now().UTC()
		ex.Results = a
		ex.DrawnAt = &drawnAt
		ex.Reveals = map[string]*models.RevealRecord{}
		assignment = a
		return nil
	})
	if errors.Is(err, ErrNoValidAssignment) {
		logger.Warningf("Draw for exchange %s: %v", exchangeID, err)
	}
	if err != nil {
		return nil, s.storeError(exchangeID, err)
	}
	logger.Infof("Drew exchange %s with %d participants", exchangeID, len(assignment))
	return assignment, nil
}

// ClearResults removes the results and reveal records of an exchange.
func (s *ExchangeService) ClearResults(exchangeID string) error {
	_, err := s.store.UpdateExchange(exchangeID, func(ex *models.Exchange) error {
		clearResults(ex)
		return nil
	})
	if err != nil {
		return s.storeError(exchangeID, err)
	}
	logger.Infof("Cleared results of exchange %s", exchangeID)
	return nil
}

// Pairs resolves the stored results to participants, in participant order.
func (s *ExchangeService) Pairs(exchangeID string) ([]models.Pair, error) {
	ex, err := s.GetExchange(exchangeID)
	if err != nil {
		return nil, err
	}
	if !ex.Drawn() {
		return nil, ErrNotDrawn
	}
	return lo.FilterMap(ex.Participants, func(giver *models.Participant, _ int) (models.Pair, bool) {
		receiver := ex.Participant(ex.Results[giver.ID])
		return models.Pair{Giver: giver, Receiver: receiver}, receiver != nil
	}), nil
}

// Reveal looks up the receiver drawn for giverID and records that the giver has
// opened it. Opening again is allowed; AlreadyOpened tells the caller.
func (s *ExchangeService) Reveal(exchangeID, giverID string) (*Reveal, error) {
	var reveal *Reveal
	_, err := s.store.UpdateExchange(exchangeID, func(ex *models.Exchange) error {
		if !ex.Drawn() {
			return ErrNotDrawn
		}
		giver := ex.Participant(giverID)
		if giver == nil {
			return ErrParticipantNotFound
		}
		receiver := ex.Participant(ex.Results[giverID])
		if receiver == nil {
			return ErrNotDrawn
		}

		previous := ex.Reveals[giverID]
		openedAt := s.now().UTC()
		if ex.Reveals == nil {
			ex.Reveals = map[string]*models.RevealRecord{}
		}
		ex.Reveals[giverID] = &models.RevealRecord{Opened: true, At: openedAt}

		reveal = &Reveal{
			ExchangeName:  ex.Name,
			Giver:         giver,
			Receiver:      receiver,
			AlreadyOpened: previous != nil && previous.Opened,
			OpenedAt:      openedAt,
		}
		return nil
	})
	if err != nil {
		return nil, s.storeError(exchangeID, err)
	}
	if reveal.AlreadyOpened {
		logger.Infof("Participant %s of exchange %s opened their result again", giverID, exchangeID)
	}
	return reveal, nil
}

// SaveWishList replaces a participant's wish list. Wishes without an ID get one.
func (s *ExchangeService) SaveWishList(exchangeID, participantID string, items []*models.Wish) (*models.WishList, error) {
	ex, err := s.GetExchange(exchangeID)
	if err != nil {
		return nil, err
	}
	participant := ex.Participant(participantID)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	items = lo.Compact(items)
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.PurchaseLink = strings.TrimSpace(item.PurchaseLink)
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.ImageBase64 != "" {
			if err := checkImage(item.ImageBase64, s.maxImageBytes); err != nil {
				return nil, err
			}
		}
	}

	list := &models.WishList{
		ExchangeID:      exchangeID,
		ParticipantID:   participantID,
		ParticipantName: participant.Name,
		Items:           items,
		UpdatedAt:       s.now().UTC(),
	}
	if err := s.validate.Struct(list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWish, err)
	}
	if err := s.store.PutWishList(list); err != nil {
		if errors.Is(err, storage.ErrUnknownParticipant) {
			return nil, ErrParticipantNotFound
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, s.storeError(exchangeID, err)
		}
		return nil, fmt.Errorf("save wish list: %w", err)
	}
	return list, nil
}

// GetWishList returns a participant's wish list, empty if none was saved.
func (s *ExchangeService) GetWishList(exchangeID, participantID string) (*models.WishList, error) {
	ex, err := s.GetExchange(exchangeID)
	if err != nil {
		return nil, err
	}
	participant := ex.Participant(participantID)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	list, err := s.store.GetWishList(exchangeID, participantID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.WishList{
			ExchangeID:      exchangeID,
			ParticipantID:   participantID,
			ParticipantName: participant.Name,
			Items:           []*models.Wish{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wish list: %w", err)
	}
	list.ParticipantName = participant.Name
	return list, nil
}

// ListWishLists returns the wish lists published in an exchange.
func (s *ExchangeService) ListWishLists(exchangeID string) ([]*models.WishList, error) {
	if _, err := s.GetExchange(exchangeID); err != nil {
		return nil, err
	}
	lists, err := s.store.ListWishLists(exchangeID)
	if err != nil {
		return nil, fmt.Errorf("list wish lists: %w", err)
	}
	return lists, nil
}

// CollectGarbage reclaims space in the store. It is run periodically by the server.
func (s *ExchangeService) CollectGarbage() {
	if err := s.store.CollectGarbage(); err != nil {
		logger.Errorf("Store garbage collection failed: %v", err)
		return
	}
	logger.Infof("Performed store garbage collection.")
}

func clearResults(ex *models.Exchange) {
	ex.Results = nil
	ex.DrawnAt = nil
	ex.Reveals = nil
}

// storeError maps storage.ErrNotFound to ErrExchangeNotFound and leaves service
// errors as they are.
func (s *ExchangeService) storeError(exchangeID string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrExchangeNotFound, exchangeID)
	}
	return err
}
