package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerogestion/aerogate/internal/model"
	"github.com/aerogestion/aerogate/internal/queue"
	"github.com/aerogestion/aerogate/internal/snapshot"
	"github.com/aerogestion/aerogate/internal/store"
	"github.com/aerogestion/aerogate/internal/validate"
)

type fakeSession struct {
	mu          sync.Mutex
	invalidated bool
}

func (f *fakeSession) Username() string { return "ops" }

func (f *fakeSession) Invalidate() {
	f.mu.Lock()
	f.invalidated = true
	f.mu.Unlock()
}

func (f *fakeSession) wasInvalidated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidated
}

func (f *fakeSession) Token() (string, error) { return "tok", nil }

type fakeSink struct {
	mu     sync.Mutex
	events []queue.EntityMutation
}

func (f *fakeSink) Publish(_ context.Context, ev queue.EntityMutation) error {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

func (f *fakeSink) all() []queue.EntityMutation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queue.EntityMutation(nil), f.events...)
}

// counters tracks how often each method+path was hit.
type counters struct {
	mu   sync.Mutex
	hits map[string]int
}

func (c *counters) inc(method, path string) {
	c.mu.Lock()
	if c.hits == nil {
		c.hits = map[string]int{}
	}
	c.hits[method+" "+path]++
	c.mu.Unlock()
}

func (c *counters) get(method, path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits[method+" "+path]
}

type fixture struct {
	orch *Orchestrator
	snap *snapshot.Store
	sess *fakeSession
	sink *fakeSink
	hits *counters
}

// newFixture stands up one httptest server acting as every remote service
// and seeds the snapshot with a consistent world: two airports, one ACTIVO
// plane, one flight, one passenger.
func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	hits := &counters{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.inc(r.Method, r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	log := logrus.New()
	sess := &fakeSession{}
	c := store.NewClient(srv.URL, 2*time.Second, sess, log)

	snap := snapshot.New(nil, 0, log)
	ctx := context.Background()
	snap.SetAirports(ctx, []model.Airport{{ID: 1, CodigoIATA: "MAD"}, {ID: 2, CodigoIATA: "BCN"}})
	snap.SetPlanes(ctx, []model.Plane{{ID: 3, Matricula: "EC-ABC", Estado: model.PlaneStatusActive}})
	snap.SetFlights(ctx, []model.Flight{{ID: 10, NumeroVuelo: "IB1234"}})
	snap.SetPassengers(ctx, []model.Passenger{{ID: 20}})

	sink := &fakeSink{}
	orch := New(snap, Clients{
		Planes:       store.NewPlanes(c),
		Airports:     store.NewAirports(c),
		Flights:      store.NewFlights(c),
		Stopovers:    store.NewStopovers(c),
		Passengers:   store.NewPassengers(c),
		Reservations: store.NewReservations(c),
	}, sess, sink, log)
	orch.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	return &fixture{orch: orch, snap: snap, sess: sess, sink: sink, hits: hits}
}

func validFlightDraft() model.FlightDraft {
	return model.FlightDraft{
		NumeroVuelo:         "IB5678",
		FechaHoraSalida:     "2026-03-11T10:00:00",
		FechaHoraLlegada:    "2026-03-11T14:00:00",
		AeropuertoOrigenID:  "1",
		AeropuertoDestinoID: "2",
		AvionID:             "3",
		Estado:              "PROGRAMADO",
	}
}

func TestSubmitFlightHappyPath(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/vuelos":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":11,"numero_vuelo":"IB5678","fecha_hora_salida":"2026-03-11T10:00:00","fecha_hora_llegada":"2026-03-11T14:00:00","aeropuerto_origen_id":1,"aeropuerto_destino_id":2,"avion_id":3,"estado":"PROGRAMADO"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/vuelos":
			_, _ = w.Write([]byte(`[{"id":10,"numero_vuelo":"IB1234"},{"id":11,"numero_vuelo":"IB5678"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	saved, err := fx.orch.SubmitFlight(context.Background(), validFlightDraft(), false, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, saved.ID)

	// Exactly one dispatch and exactly one refetch.
	assert.Equal(t, 1, fx.hits.get(http.MethodPost, "/api/v1/vuelos"))
	assert.Equal(t, 1, fx.hits.get(http.MethodGet, "/api/v1/vuelos"))

	// The refetch replaced the snapshot slot.
	assert.Len(t, fx.snap.Flights(), 2)
	_, ok := fx.snap.FlightByID(11)
	assert.True(t, ok)

	events := fx.sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, "vuelo.creada", events[0].RoutingKey())
	assert.Equal(t, 11, events[0].EntityID)
	assert.Equal(t, "ops", events[0].Actor)
}

func TestSubmitBlockedByValidationNeverDispatches(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected remote call: %s %s", r.Method, r.URL.Path)
	})

	d := validFlightDraft()
	d.AeropuertoDestinoID = "1" // same as origin

	_, err := fx.orch.SubmitFlight(context.Background(), d, false, 0)
	var v *validate.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, validate.CodeFormatInvalid, v.Code)
	assert.Empty(t, fx.sink.all())
}

func TestValidationChainOrder(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected remote call: %s %s", r.Method, r.URL.Path)
	})

	// Bad flight number AND unknown airports: format is checked first.
	d := validFlightDraft()
	d.NumeroVuelo = "bad"
	d.AeropuertoOrigenID = "99"

	_, err := fx.orch.SubmitFlight(context.Background(), d, false, 0)
	var v *validate.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, validate.CodeFormatInvalid, v.Code)
	assert.Equal(t, "numero_vuelo", v.Field)
}

func TestRemoteRejectionSkipsRefetchAndEvent(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.Error(w, "numero_vuelo already exists", http.StatusBadRequest)
			return
		}
		t.Errorf("unexpected remote call: %s %s", r.Method, r.URL.Path)
	})

	_, err := fx.orch.SubmitFlight(context.Background(), validFlightDraft(), false, 0)
	var re *store.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, validate.CodeDuplicateConflict, re.Code)

	assert.Equal(t, 0, fx.hits.get(http.MethodGet, "/api/v1/vuelos"))
	assert.Empty(t, fx.sink.all())
	assert.False(t, fx.sess.wasInvalidated())
}

func TestUnauthorizedDispatchKillsSession(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})

	_, err := fx.orch.SubmitFlight(context.Background(), validFlightDraft(), false, 0)
	var re *store.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, validate.CodeSessionExpired, re.Code)
	assert.True(t, fx.sess.wasInvalidated())
}

func TestReservationGetsConfirmationCode(t *testing.T) {
	var received model.Reservation
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/reservas":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(model.Reservation{ID: 77, CodigoReserva: received.CodigoReserva})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/reservas":
			_, _ = w.Write([]byte(`[]`))
		}
	})

	d := model.ReservationDraft{
		PasajeroID: "20",
		VueloID:    "10",
		Asiento:    "12A",
		Precio:     "99.90",
		Clase:      "ECONOMICA",
		Estado:     "PENDIENTE",
	}
	saved, err := fx.orch.SubmitReservation(context.Background(), d, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 77, saved.ID)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6,10}$`), received.CodigoReserva)
}

func TestReservationKeepsProvidedCode(t *testing.T) {
	var received model.Reservation
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/reservas":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(model.Reservation{ID: 78})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/reservas":
			_, _ = w.Write([]byte(`[]`))
		}
	})

	d := model.ReservationDraft{
		PasajeroID:    "20",
		VueloID:       "10",
		Asiento:       "12A",
		Precio:        "99.90",
		Clase:         "ECONOMICA",
		Estado:        "PENDIENTE",
		CodigoReserva: "ABC123",
	}
	_, err := fx.orch.SubmitReservation(context.Background(), d, false, 0)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", received.CodigoReserva)
}

func TestConcurrentSubmissionSuppressed(t *testing.T) {
	inHandler := make(chan struct{})
	release := make(chan struct{})
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			close(inHandler)
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":11}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	done := make(chan error, 1)
	go func() {
		_, err := fx.orch.SubmitFlight(context.Background(), validFlightDraft(), false, 0)
		done <- err
	}()

	<-inHandler
	// While the first submission is mid-dispatch, a second one of the same
	// entity type is refused, not queued.
	_, err := fx.orch.SubmitFlight(context.Background(), validFlightDraft(), false, 0)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)

	// Once the slot is free the next submission goes through.
	assert.Equal(t, 1, fx.hits.get(http.MethodPost, "/api/v1/vuelos"))
}

func TestUpdateDispatchesPut(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/vuelos/10":
			_, _ = w.Write([]byte(`{"id":10,"numero_vuelo":"IB5678"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/vuelos":
			_, _ = w.Write([]byte(`[{"id":10,"numero_vuelo":"IB5678"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	// Editing exempts the past-departure rule.
	d := validFlightDraft()
	d.FechaHoraSalida = "2026-03-09T10:00:00"
	d.FechaHoraLlegada = "2026-03-09T14:00:00"

	saved, err := fx.orch.SubmitFlight(context.Background(), d, true, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, saved.ID)

	events := fx.sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, "vuelo.actualizada", events[0].RoutingKey())
}

func TestDeletePublishesEvent(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[]`))
		}
	})

	require.NoError(t, fx.orch.DeleteFlight(context.Background(), 10))
	events := fx.sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, "vuelo.eliminada", events[0].RoutingKey())
	assert.Equal(t, 10, events[0].EntityID)

	// The refetch emptied the slot.
	assert.Empty(t, fx.snap.Flights())
}

func TestTerminalSubmissionRefreshesOwningAirportSlot(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/aeropuertos/1/terminales":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":30,"nombre":"T2","capacidad_pasajeros":5000,"estado":"ACTIVO","aeropuerto_id":1}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/aeropuertos/1/terminales":
			_, _ = w.Write([]byte(`[{"id":30,"nombre":"T2"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	d := model.TerminalDraft{Nombre: "T2", CapacidadPasajeros: "5000", Estado: "ACTIVO"}
	saved, err := fx.orch.SubmitTerminal(context.Background(), 1, d, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, saved.ID)
	assert.Len(t, fx.snap.TerminalsOf(1), 1)
}
