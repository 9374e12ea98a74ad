// Package queue publishes entity mutation events to the message broker and
// runs the audit consumer that turns them into a rotated audit trail.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/aerogestion/aerogate/internal/model"
)

// Mutation actions, past tense to match the event vocabulary on the wire.
const (
	ActionCreated = "creada"
	ActionUpdated = "actualizada"
	ActionDeleted = "eliminada"
)

// EntityMutation announces that a store accepted a write. Downstream
// consumers get enough to audit or trigger follow-up work without calling
// back into the stores.
type EntityMutation struct {
	EventID   string           `json:"event_id"`
	Entity    model.EntityType `json:"entity"`
	Action    string           `json:"action"`
	EntityID  int              `json:"entity_id"`
	Actor     string           `json:"actor,omitempty"`
	Timestamp string           `json:"timestamp"`
}

// NewEntityMutation stamps a fresh event for one accepted write.
func NewEntityMutation(entity model.EntityType, action string, entityID int, actor string) EntityMutation {
	return EntityMutation{
		EventID:   uuid.NewString(),
		Entity:    entity,
		Action:    action,
		EntityID:  entityID,
		Actor:     actor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RoutingKey is "<entity>.<action>", e.g. "vuelo.creada", so consumers can
// bind with wildcards per entity or per action.
func (e EntityMutation) RoutingKey() string {
	return string(e.Entity) + "." + e.Action
}
