package events

import "time"

const ClientLifecycleTopic = "client.lifecycle.v1"

const EventTypeClientProvisioned = "client.provisioned"

// ClientProvisionedEvent announces that a tenant store exists, is seeded
// and is ready to serve requests. The db name is intentionally plaintext
// here: consumers are internal and need it to address the store.
type ClientProvisionedEvent struct {
	EventType  string    `json:"event_type"`
	ClientID   int64     `json:"client_id"`
	DBName     string    `json:"db_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
