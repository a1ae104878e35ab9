package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"findash/internal/core"
)

// ChangeMessage announces that one collection was written. It carries no
// record payload; consumers reload from the shared store.
type ChangeMessage struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	RecordID   string    `json:"record_id,omitempty"`
	Revision   int64     `json:"revision"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChangeMessage wraps a change with a sortable unique id.
func NewChangeMessage(c core.Change) *ChangeMessage {
	return &ChangeMessage{
		ID:         ulid.Make().String(),
		Collection: c.Collection,
		RecordID:   c.RecordID,
		Revision:   c.Revision,
		Timestamp:  time.Now().UTC(),
	}
}

// Change returns the engine-level view of the message.
func (m *ChangeMessage) Change() core.Change {
	return core.Change{Collection: m.Collection, RecordID: m.RecordID, Revision: m.Revision}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and rejects ones without a
// collection.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Collection == "" {
		return nil, errors.New("change message without collection")
	}
	return &msg, nil
}
