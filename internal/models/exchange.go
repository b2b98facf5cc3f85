package models

import "time"

// Participant represents a person taking part in an exchange.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RevealRecord marks that a giver has opened their result.
// It is advisory: opening twice is allowed.
type RevealRecord struct {
	Opened bool      `json:"opened"`
	At     time.Time `json:"at"`
}

// Exchange is one gift exchange with its participants, exclusion rules and,
// once drawn, its results.
type Exchange struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	CreatedAt    time.Time      `json:"createdAt"`
	Participants []*Participant `json:"participants"`
	// Exclusions maps a giver ID to the receiver IDs that giver must not draw.
	Exclusions map[string][]string `json:"exclusions"`
	// Results maps a giver ID to the receiver ID. Nil until the exchange is drawn.
	Results map[string]string        `json:"results,omitempty"`
	DrawnAt *time.Time               `json:"drawnAt,omitempty"`
	Reveals map[string]*RevealRecord `json:"reveals,omitempty"`
}

// Participant returns the participant with the given ID, or nil.
func (e *Exchange) Participant(id string) *Participant {
	for _, p := range e.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ParticipantIDs returns the participant IDs in insertion order.
func (e *Exchange) ParticipantIDs() []string {
	ids := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		ids = append(ids, p.ID)
	}
	return ids
}

// Drawn reports whether the exchange currently has results.
func (e *Exchange) Drawn() bool {
	return len(e.Results) > 0
}

// ExchangeSummary is the list view of an exchange.
type ExchangeSummary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CreatedAt        time.Time `json:"createdAt"`
	ParticipantCount int       `json:"participantCount"`
	Drawn            bool      `json:"drawn"`
}

// Summary builds the list view of e.
func (e *Exchange) Summary() ExchangeSummary {
	return ExchangeSummary{
		ID:               e.ID,
		Name:             e.Name,
		CreatedAt:        e.CreatedAt,
		ParticipantCount: len(e.Participants),
		Drawn:            e.Drawn(),
	}
}

// Pair is one line of a drawn exchange, resolved to names.
type Pair struct {
	Giver    *Participant `json:"giver"`
	Receiver *Participant `json:"receiver"`
}
