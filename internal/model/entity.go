// Package model defines the airline reference data entities exchanged with
// the remote entity services, plus the raw draft types submitted through the
// gateway forms. Entities carry the wire field names used by the remote
// stores (Spanish, as defined by the owning services); drafts carry the
// untyped text a form delivers before validation.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// EntityType tags each entity collection known to the gateway. The values
// match the resource names used by the remote services.
type EntityType string

const (
	EntityPlane       EntityType = "avion"
	EntityAirport     EntityType = "aeropuerto"
	EntityTerminal    EntityType = "terminal"
	EntityRunway      EntityType = "pista"
	EntityFlight      EntityType = "vuelo"
	EntityStopover    EntityType = "escala"
	EntityPassenger   EntityType = "pasajero"
	EntityReservation EntityType = "reserva"
)

// Draft is a submitted form record before validation. Fields returns the raw
// text value per wire field name; absent and empty fields are both "".
type Draft interface {
	Type() EntityType
	Fields() map[string]string
}

// Field holds one raw form value. Values originate as text, but JSON bodies
// may carry them as numbers, so unmarshalling accepts any scalar and keeps
// its literal text. null becomes the empty string.
type Field string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(b)
	return nil
}

// MarshalJSON emits the raw text as a JSON string.
func (f Field) MarshalJSON() ([]byte, error) { return json.Marshal(string(f)) }

func (f Field) String() string { return string(f) }

// trim collapses surrounding whitespace the same way the validators do.
func trim(f Field) string { return strings.TrimSpace(string(f)) }
