package notify

import (
	"time"

	"github.com/google/uuid"

	"quikstox/internal/feature/stock/domain/entity"
)

// Message is the wire form of a lookup event.
type Message struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Success      bool      `json:"success"`
	IncludeZacks bool      `json:"include_zacks"`
	Error        string    `json:"error,omitempty"`
	At           time.Time `json:"at"`
}

// stamp assigns message ids and timestamps; tests replace it.
type stamp struct {
	newID func() string
	now   func() time.Time
}

func defaultStamp() stamp {
	return stamp{newID: uuid.NewString, now: time.Now}
}

func (s stamp) message(ev entity.LookupEvent) Message {
	return Message{
		ID:           s.newID(),
		Symbol:       ev.Symbol,
		Success:      ev.Success,
		IncludeZacks: ev.IncludeRating,
		Error:        ev.Error,
		At:           s.now().UTC(),
	}
}
