// Package snapshot holds the locally cached copies of the remote entity
// collections the referential resolver validates against. Each collection
// occupies one slot; a refetch replaces the slot wholesale, so concurrent
// fetches resolve last-write-wins. Snapshots are only as fresh as the last
// fetch; validating against a stale snapshot is accepted behavior because
// the remote stores re-validate authoritatively.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aerogestion/aerogate/internal/model"
)

// Store keeps collections in memory and mirrors them to Redis when a client
// is configured, so a restarted gateway can warm its snapshots without
// hitting every remote service. A nil Redis client degrades to memory-only.
type Store struct {
	mu           sync.RWMutex
	planes       []model.Plane
	airports     []model.Airport
	flights      []model.Flight
	stopovers    []model.Stopover
	passengers   []model.Passenger
	reservations []model.Reservation
	terminals    map[int][]model.Terminal
	runways      map[int][]model.Runway

	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// New returns a Store mirroring to rdb with the given TTL. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *Store {
	return &Store{
		terminals: make(map[int][]model.Terminal),
		runways:   make(map[int][]model.Runway),
		rdb:       rdb,
		ttl:       ttl,
		log:       log,
	}
}

func (s *Store) SetPlanes(ctx context.Context, v []model.Plane) {
	s.mu.Lock()
	s.planes = v
	s.mu.Unlock()
	s.mirror(ctx, "snapshot:aviones", v)
}

func (s *Store) SetAirports(ctx context.Context, v []model.Airport) {
	s.mu.Lock()
	s.airports = v
	s.mu.Unlock()
	s.mirror(ctx, "snapshot:aeropuertos", v)
}

func (s *Store) SetFlights(ctx context.Context, v []model.Flight) {
	s.mu.Lock()
	s.flights = v
	s.mu.Unlock()
	s.mirror(ctx, "snapshot:vuelos", v)
}

func (s *Store) SetStopovers(ctx context.Context, v []model.Stopover) {
	s.mu.Lock()
	s.stopovers = v
	s.mu.Unlock()
	s.mirror(ctx, "snapshot:escalas", v)
}

func (s *Store) SetPassengers(ctx context.Context, v []model.Passenger) {
	s.mu.Lock()
	s.passengers = v
	s.mu.Unlock()
	s.mirror(ctx, "snapshot:pasajeros", v)
}

func (s *Store) SetReservations(ctx context.Context, v []model.Reservation) {
	s.mu.Lock()
	s.reservations = v
	s.mu.Unlock()
	s.mirror(ctx, "snapshot:reservas", v)
}

// SetTerminals replaces the terminal slot of one airport. Retriggered on
// every airport selection; the latest fetch to resolve wins the slot.
func (s *Store) SetTerminals(ctx context.Context, airportID int, v []model.Terminal) {
	s.mu.Lock()
	s.terminals[airportID] = v
	s.mu.Unlock()
	s.mirror(ctx, fmt.Sprintf("snapshot:terminales:%d", airportID), v)
}

func (s *Store) SetRunways(ctx context.Context, airportID int, v []model.Runway) {
	s.mu.Lock()
	s.runways[airportID] = v
	s.mu.Unlock()
	s.mirror(ctx, fmt.Sprintf("snapshot:pistas:%d", airportID), v)
}

func (s *Store) Planes() []model.Plane {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planes
}

func (s *Store) Airports() []model.Airport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airports
}

func (s *Store) Flights() []model.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flights
}

func (s *Store) Stopovers() []model.Stopover {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopovers
}

func (s *Store) Passengers() []model.Passenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passengers
}

func (s *Store) Reservations() []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reservations
}

func (s *Store) PlaneByID(id int) (model.Plane, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.planes {
		if p.ID == id {
			return p, true
		}
	}
	return model.Plane{}, false
}

func (s *Store) AirportByID(id int) (model.Airport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.airports {
		if a.ID == id {
			return a, true
		}
	}
	return model.Airport{}, false
}

func (s *Store) FlightByID(id int) (model.Flight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.flights {
		if f.ID == id {
			return f, true
		}
	}
	return model.Flight{}, false
}

func (s *Store) PassengerByID(id int) (model.Passenger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.passengers {
		if p.ID == id {
			return p, true
		}
	}
	return model.Passenger{}, false
}

func (s *Store) TerminalsOf(airportID int) []model.Terminal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terminals[airportID]
}

func (s *Store) RunwaysOf(airportID int) []model.Runway {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runways[airportID]
}

// Warm loads the top-level collections from Redis into memory. Missing keys
// and decode failures are skipped; the next refetch repairs the slot.
func (s *Store) Warm(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	warm(ctx, s, "snapshot:aviones", func(v []model.Plane) { s.planes = v })
	warm(ctx, s, "snapshot:aeropuertos", func(v []model.Airport) { s.airports = v })
	warm(ctx, s, "snapshot:vuelos", func(v []model.Flight) { s.flights = v })
	warm(ctx, s, "snapshot:escalas", func(v []model.Stopover) { s.stopovers = v })
	warm(ctx, s, "snapshot:pasajeros", func(v []model.Passenger) { s.passengers = v })
	warm(ctx, s, "snapshot:reservas", func(v []model.Reservation) { s.reservations = v })
}

func warm[T any](ctx context.Context, s *Store, key string, assign func([]T)) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	s.mu.Lock()
	assign(v)
	s.mu.Unlock()
}

func (s *Store) mirror(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil && s.log != nil {
		s.log.WithError(err).WithField("key", key).Warn("snapshot mirror failed")
	}
}
