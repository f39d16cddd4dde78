package models

import "time"

// Entity is a host-known entity offered by entity selectors.
type Entity struct {
	EntityID  string    `json:"entity_id"` // e.g. climate.living_room
	Domain    string    `json:"domain"`
	Name      string    `json:"name,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
