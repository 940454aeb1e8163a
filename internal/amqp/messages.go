package amqp

import (
	"encoding/json"
	"time"
)

// RecordSyncMessage is a lightweight notification that a paycheck record is
// ready for export. It carries only the ID and version; the worker fetches
// the full record from the database.
type RecordSyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates a new sync message with just ID and version
func NewRecordSyncMessage(id, version int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
