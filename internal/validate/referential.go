package validate

import (
	"strconv"
	"strings"

	"github.com/aerogestion/aerogate/internal/model"
)

// View is the snapshot of remote collections the resolver validates
// against. It is whatever was last fetched; staleness relative to
// concurrent remote writes is accepted, documented behavior.
type View interface {
	PlaneByID(id int) (model.Plane, bool)
	AirportByID(id int) (model.Airport, bool)
	FlightByID(id int) (model.Flight, bool)
	PassengerByID(id int) (model.Passenger, bool)
	TerminalsOf(airportID int) []model.Terminal
	Airports() []model.Airport
}

// RefContext carries submission facts the resolver needs beyond the draft
// itself: whether this is an edit (and of which id), and the owning airport
// for nested terminal and runway submissions.
type RefContext struct {
	Editing   bool
	CurrentID int
	AirportID int
}

// References confirms every foreign key of the draft against the snapshot
// view, in a fixed per-entity order, and returns the first violation or
// nil. Identity is integer equality after coercion; the resolver never
// fetches, it only consumes the view it is given.
func References(d model.Draft, view View, rc RefContext) *Violation {
	fields := d.Fields()
	switch d.Type() {
	case model.EntityAirport:
		return airportRefs(fields, view, rc)
	case model.EntityTerminal, model.EntityRunway:
		if _, ok := view.AirportByID(rc.AirportID); !ok {
			return notFound("aeropuerto_id", strconv.Itoa(rc.AirportID))
		}
	case model.EntityFlight:
		return flightRefs(fields, view)
	case model.EntityStopover:
		return stopoverRefs(fields, view)
	case model.EntityReservation:
		if v := requireRef(fields, "pasajero_id", func(id int) bool {
			_, ok := view.PassengerByID(id)
			return ok
		}); v != nil {
			return v
		}
		return requireRef(fields, "vuelo_id", func(id int) bool {
			_, ok := view.FlightByID(id)
			return ok
		})
	}
	return nil
}

// airportRefs enforces IATA uniqueness within the currently known airport
// collection. The remote store is still authoritative; this only catches
// clashes visible in the snapshot.
func airportRefs(fields map[string]string, view View, rc RefContext) *Violation {
	code := fields["codigo_iata"]
	if code == "" {
		return nil
	}
	for _, a := range view.Airports() {
		if rc.Editing && a.ID == rc.CurrentID {
			continue
		}
		if strings.EqualFold(a.CodigoIATA, code) {
			return &Violation{
				Code:   CodeDuplicateConflict,
				Field:  "codigo_iata",
				Value:  code,
				Detail: "IATA code is already in use",
			}
		}
	}
	return nil
}

func flightRefs(fields map[string]string, view View) *Violation {
	if v := requireRef(fields, "aeropuerto_origen_id", func(id int) bool {
		_, ok := view.AirportByID(id)
		return ok
	}); v != nil {
		return v
	}
	if v := requireRef(fields, "aeropuerto_destino_id", func(id int) bool {
		_, ok := view.AirportByID(id)
		return ok
	}); v != nil {
		return v
	}
	// Compare parsed integers, not raw form text: "002" and "2" are the
	// same airport.
	origin, _ := strconv.Atoi(fields["aeropuerto_origen_id"])
	dest, _ := strconv.Atoi(fields["aeropuerto_destino_id"])
	if origin == dest {
		return badFormat("aeropuerto_destino_id", fields["aeropuerto_destino_id"],
			"origin and destination airports must differ")
	}
	planeID, _ := strconv.Atoi(fields["avion_id"])
	plane, ok := view.PlaneByID(planeID)
	if !ok {
		return notFound("avion_id", fields["avion_id"])
	}
	if plane.Estado != model.PlaneStatusActive {
		return &Violation{
			Code:   CodeReferentialStateInvalid,
			Field:  "avion_id",
			Value:  fields["avion_id"],
			Detail: "assigned plane must be ACTIVO",
		}
	}
	return nil
}

func stopoverRefs(fields map[string]string, view View) *Violation {
	if v := requireRef(fields, "vuelo_id", func(id int) bool {
		_, ok := view.FlightByID(id)
		return ok
	}); v != nil {
		return v
	}
	airportID, _ := strconv.Atoi(fields["aeropuerto_id"])
	if _, ok := view.AirportByID(airportID); !ok {
		return notFound("aeropuerto_id", fields["aeropuerto_id"])
	}
	if name := fields["terminal"]; name != "" {
		found := false
		for _, t := range view.TerminalsOf(airportID) {
			if t.Nombre == name {
				found = true
				break
			}
		}
		if !found {
			return notFound("terminal", name)
		}
	}
	return nil
}

// requireRef parses the named field as an id and applies the existence
// predicate. Parse failures were already rejected by the format pass.
func requireRef(fields map[string]string, name string, exists func(int) bool) *Violation {
	id, err := strconv.Atoi(fields[name])
	if err != nil || !exists(id) {
		return notFound(name, fields[name])
	}
	return nil
}
