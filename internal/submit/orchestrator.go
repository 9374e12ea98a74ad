// Package submit drives one entity submission end to end: the validation
// chain, the single remote dispatch, the single snapshot refetch and the
// mutation event. Validation here is advisory; the remote store re-validates
// and its verdict wins.
package submit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aerogestion/aerogate/internal/model"
	"github.com/aerogestion/aerogate/internal/queue"
	"github.com/aerogestion/aerogate/internal/snapshot"
	"github.com/aerogestion/aerogate/internal/store"
	"github.com/aerogestion/aerogate/internal/validate"
)

// ErrSubmissionInFlight is returned when a submission for the same entity
// type is already running; the duplicate attempt is suppressed, not queued.
var ErrSubmissionInFlight = errors.New("submit: a submission for this entity type is already in flight")

// SessionControl is what the orchestrator needs from the session: who acts,
// and the ability to drop a credential the stores rejected.
type SessionControl interface {
	Username() string
	Invalidate()
}

// EventSink receives mutation events. Publishing failures never fail the
// submission that produced the event.
type EventSink interface {
	Publish(ctx context.Context, ev queue.EntityMutation) error
}

// Orchestrator wires the validation chain to the remote clients and the
// snapshot store. One instance serves all entity types; a per-type flag
// keeps concurrent submissions of the same type from double-dispatching.
type Orchestrator struct {
	snap *snapshot.Store

	planes       *store.Planes
	airports     *store.Airports
	flights      *store.Flights
	stopovers    *store.Stopovers
	passengers   *store.Passengers
	reservations *store.Reservations

	session SessionControl
	events  EventSink
	log     *logrus.Logger
	now     func() time.Time

	mu       sync.Mutex
	inflight map[model.EntityType]bool
}

type Clients struct {
	Planes       *store.Planes
	Airports     *store.Airports
	Flights      *store.Flights
	Stopovers    *store.Stopovers
	Passengers   *store.Passengers
	Reservations *store.Reservations
}

func New(snap *snapshot.Store, clients Clients, session SessionControl, events EventSink, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		snap:         snap,
		planes:       clients.Planes,
		airports:     clients.Airports,
		flights:      clients.Flights,
		stopovers:    clients.Stopovers,
		passengers:   clients.Passengers,
		reservations: clients.Reservations,
		session:      session,
		events:       events,
		log:          log,
		now:          time.Now,
		inflight:     make(map[model.EntityType]bool),
	}
}

// begin claims the in-flight slot for one entity type. The matching end call
// must run even on error paths.
func (o *Orchestrator) begin(t model.EntityType) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight[t] {
		return ErrSubmissionInFlight
	}
	o.inflight[t] = true
	return nil
}

func (o *Orchestrator) end(t model.EntityType) {
	o.mu.Lock()
	delete(o.inflight, t)
	o.mu.Unlock()
}

// check runs the fixed validation chain: presence and format, then
// references, then temporal rules, then status membership. First violation
// stops the chain.
func (o *Orchestrator) check(d model.Draft, rc validate.RefContext) error {
	if v := validate.Format(d); v != nil {
		return v
	}
	if v := validate.References(d, o.snap, rc); v != nil {
		return v
	}
	if v := validate.Temporal(d, o.now(), rc.Editing); v != nil {
		return v
	}
	if v := validate.State(d); v != nil {
		return v
	}
	return nil
}

// remoteFailed inspects a dispatch error. A store answering 401 means the
// held credential is dead; the session is dropped so the operator logs in
// again instead of replaying it.
func (o *Orchestrator) remoteFailed(err error) error {
	var re *store.RemoteError
	if errors.As(err, &re) && re.Code == validate.CodeSessionExpired {
		o.session.Invalidate()
	}
	return err
}

// emit publishes a mutation event, best effort.
func (o *Orchestrator) emit(ctx context.Context, entity model.EntityType, action string, id int) {
	if o.events == nil {
		return
	}
	ev := queue.NewEntityMutation(entity, action, id, o.session.Username())
	_ = o.events.Publish(ctx, ev)
}

func action(editing bool) string {
	if editing {
		return queue.ActionUpdated
	}
	return queue.ActionCreated
}

func (o *Orchestrator) SubmitPlane(ctx context.Context, d model.PlaneDraft, editing bool, currentID int) (model.Plane, error) {
	if err := o.begin(model.EntityPlane); err != nil {
		return model.Plane{}, err
	}
	defer o.end(model.EntityPlane)

	if err := o.check(d, validate.RefContext{Editing: editing, CurrentID: currentID}); err != nil {
		return model.Plane{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Plane
		err   error
	)
	if editing {
		saved, err = o.planes.Update(ctx, currentID, payload)
	} else {
		saved, err = o.planes.Create(ctx, payload)
	}
	if err != nil {
		return model.Plane{}, o.remoteFailed(err)
	}

	o.refetchPlanes(ctx)
	o.emit(ctx, model.EntityPlane, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeletePlane(ctx context.Context, id int) error {
	if err := o.planes.Delete(ctx, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchPlanes(ctx)
	o.emit(ctx, model.EntityPlane, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitAirport(ctx context.Context, d model.AirportDraft, editing bool, currentID int) (model.Airport, error) {
	if err := o.begin(model.EntityAirport); err != nil {
		return model.Airport{}, err
	}
	defer o.end(model.EntityAirport)

	if err := o.check(d, validate.RefContext{Editing: editing, CurrentID: currentID}); err != nil {
		return model.Airport{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Airport
		err   error
	)
	if editing {
		saved, err = o.airports.Update(ctx, currentID, payload)
	} else {
		saved, err = o.airports.Create(ctx, payload)
	}
	if err != nil {
		return model.Airport{}, o.remoteFailed(err)
	}

	o.refetchAirports(ctx)
	o.emit(ctx, model.EntityAirport, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeleteAirport(ctx context.Context, id int) error {
	if err := o.airports.Delete(ctx, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchAirports(ctx)
	o.emit(ctx, model.EntityAirport, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitTerminal(ctx context.Context, airportID int, d model.TerminalDraft, editing bool, currentID int) (model.Terminal, error) {
	if err := o.begin(model.EntityTerminal); err != nil {
		return model.Terminal{}, err
	}
	defer o.end(model.EntityTerminal)

	rc := validate.RefContext{Editing: editing, CurrentID: currentID, AirportID: airportID}
	if err := o.check(d, rc); err != nil {
		return model.Terminal{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Terminal
		err   error
	)
	if editing {
		saved, err = o.airports.UpdateTerminal(ctx, airportID, currentID, payload)
	} else {
		saved, err = o.airports.CreateTerminal(ctx, airportID, payload)
	}
	if err != nil {
		return model.Terminal{}, o.remoteFailed(err)
	}

	o.refetchTerminals(ctx, airportID)
	o.emit(ctx, model.EntityTerminal, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeleteTerminal(ctx context.Context, airportID, id int) error {
	if err := o.airports.DeleteTerminal(ctx, airportID, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchTerminals(ctx, airportID)
	o.emit(ctx, model.EntityTerminal, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitRunway(ctx context.Context, airportID int, d model.RunwayDraft, editing bool, currentID int) (model.Runway, error) {
	if err := o.begin(model.EntityRunway); err != nil {
		return model.Runway{}, err
	}
	defer o.end(model.EntityRunway)

	rc := validate.RefContext{Editing: editing, CurrentID: currentID, AirportID: airportID}
	if err := o.check(d, rc); err != nil {
		return model.Runway{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Runway
		err   error
	)
	if editing {
		saved, err = o.airports.UpdateRunway(ctx, airportID, currentID, payload)
	} else {
		saved, err = o.airports.CreateRunway(ctx, airportID, payload)
	}
	if err != nil {
		return model.Runway{}, o.remoteFailed(err)
	}

	o.refetchRunways(ctx, airportID)
	o.emit(ctx, model.EntityRunway, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeleteRunway(ctx context.Context, airportID, id int) error {
	if err := o.airports.DeleteRunway(ctx, airportID, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchRunways(ctx, airportID)
	o.emit(ctx, model.EntityRunway, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitFlight(ctx context.Context, d model.FlightDraft, editing bool, currentID int) (model.Flight, error) {
	if err := o.begin(model.EntityFlight); err != nil {
		return model.Flight{}, err
	}
	defer o.end(model.EntityFlight)

	if err := o.check(d, validate.RefContext{Editing: editing, CurrentID: currentID}); err != nil {
		return model.Flight{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Flight
		err   error
	)
	if editing {
		saved, err = o.flights.Update(ctx, currentID, payload)
	} else {
		saved, err = o.flights.Create(ctx, payload)
	}
	if err != nil {
		return model.Flight{}, o.remoteFailed(err)
	}

	o.refetchFlights(ctx)
	o.emit(ctx, model.EntityFlight, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeleteFlight(ctx context.Context, id int) error {
	if err := o.flights.Delete(ctx, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchFlights(ctx)
	o.emit(ctx, model.EntityFlight, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitStopover(ctx context.Context, d model.StopoverDraft, editing bool, currentID int) (model.Stopover, error) {
	if err := o.begin(model.EntityStopover); err != nil {
		return model.Stopover{}, err
	}
	defer o.end(model.EntityStopover)

	if err := o.check(d, validate.RefContext{Editing: editing, CurrentID: currentID}); err != nil {
		return model.Stopover{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Stopover
		err   error
	)
	if editing {
		saved, err = o.stopovers.Update(ctx, currentID, payload)
	} else {
		saved, err = o.stopovers.Create(ctx, payload)
	}
	if err != nil {
		return model.Stopover{}, o.remoteFailed(err)
	}

	o.refetchStopovers(ctx)
	o.emit(ctx, model.EntityStopover, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeleteStopover(ctx context.Context, id int) error {
	if err := o.stopovers.Delete(ctx, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchStopovers(ctx)
	o.emit(ctx, model.EntityStopover, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitPassenger(ctx context.Context, d model.PassengerDraft, editing bool, currentID int) (model.Passenger, error) {
	if err := o.begin(model.EntityPassenger); err != nil {
		return model.Passenger{}, err
	}
	defer o.end(model.EntityPassenger)

	if err := o.check(d, validate.RefContext{Editing: editing, CurrentID: currentID}); err != nil {
		return model.Passenger{}, err
	}

	payload := d.Normalize()
	var (
		saved model.Passenger
		err   error
	)
	if editing {
		saved, err = o.passengers.Update(ctx, currentID, payload)
	} else {
		saved, err = o.passengers.Create(ctx, payload)
	}
	if err != nil {
		return model.Passenger{}, o.remoteFailed(err)
	}

	o.refetchPassengers(ctx)
	o.emit(ctx, model.EntityPassenger, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeletePassenger(ctx context.Context, id int) error {
	if err := o.passengers.Delete(ctx, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchPassengers(ctx)
	o.emit(ctx, model.EntityPassenger, queue.ActionDeleted, id)
	return nil
}

func (o *Orchestrator) SubmitReservation(ctx context.Context, d model.ReservationDraft, editing bool, currentID int) (model.Reservation, error) {
	if err := o.begin(model.EntityReservation); err != nil {
		return model.Reservation{}, err
	}
	defer o.end(model.EntityReservation)

	if err := o.check(d, validate.RefContext{Editing: editing, CurrentID: currentID}); err != nil {
		return model.Reservation{}, err
	}

	payload := d.Normalize()
	if !editing && payload.CodigoReserva == "" {
		payload.CodigoReserva = newConfirmationCode()
	}
	var (
		saved model.Reservation
		err   error
	)
	if editing {
		saved, err = o.reservations.Update(ctx, currentID, payload)
	} else {
		saved, err = o.reservations.Create(ctx, payload)
	}
	if err != nil {
		return model.Reservation{}, o.remoteFailed(err)
	}

	o.refetchReservations(ctx)
	o.emit(ctx, model.EntityReservation, action(editing), saved.ID)
	return saved, nil
}

func (o *Orchestrator) DeleteReservation(ctx context.Context, id int) error {
	if err := o.reservations.Delete(ctx, id); err != nil {
		return o.remoteFailed(err)
	}
	o.refetchReservations(ctx)
	o.emit(ctx, model.EntityReservation, queue.ActionDeleted, id)
	return nil
}

// newConfirmationCode derives an 8-character uppercase alphanumeric code.
func newConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// Refetch helpers replace one snapshot slot after an accepted write. A
// failed refetch keeps the previous slot; the snapshot stays stale until
// the next successful fetch.

func (o *Orchestrator) refetchPlanes(ctx context.Context) {
	list, err := o.planes.List(ctx)
	if err != nil {
		o.log.WithError(err).Warn("plane snapshot refetch failed")
		return
	}
	o.snap.SetPlanes(ctx, list)
}

func (o *Orchestrator) refetchAirports(ctx context.Context) {
	list, err := o.airports.List(ctx)
	if err != nil {
		o.log.WithError(err).Warn("airport snapshot refetch failed")
		return
	}
	o.snap.SetAirports(ctx, list)
}

func (o *Orchestrator) refetchTerminals(ctx context.Context, airportID int) {
	list, err := o.airports.Terminals(ctx, airportID)
	if err != nil {
		o.log.WithError(err).WithField("aeropuerto_id", airportID).Warn("terminal snapshot refetch failed")
		return
	}
	o.snap.SetTerminals(ctx, airportID, list)
}

func (o *Orchestrator) refetchRunways(ctx context.Context, airportID int) {
	list, err := o.airports.Runways(ctx, airportID)
	if err != nil {
		o.log.WithError(err).WithField("aeropuerto_id", airportID).Warn("runway snapshot refetch failed")
		return
	}
	o.snap.SetRunways(ctx, airportID, list)
}

func (o *Orchestrator) refetchFlights(ctx context.Context) {
	list, err := o.flights.List(ctx)
	if err != nil {
		o.log.WithError(err).Warn("flight snapshot refetch failed")
		return
	}
	o.snap.SetFlights(ctx, list)
}

func (o *Orchestrator) refetchStopovers(ctx context.Context) {
	list, err := o.stopovers.List(ctx)
	if err != nil {
		o.log.WithError(err).Warn("stopover snapshot refetch failed")
		return
	}
	o.snap.SetStopovers(ctx, list)
}

func (o *Orchestrator) refetchPassengers(ctx context.Context) {
	list, err := o.passengers.List(ctx)
	if err != nil {
		o.log.WithError(err).Warn("passenger snapshot refetch failed")
		return
	}
	o.snap.SetPassengers(ctx, list)
}

func (o *Orchestrator) refetchReservations(ctx context.Context) {
	list, err := o.reservations.List(ctx)
	if err != nil {
		o.log.WithError(err).Warn("reservation snapshot refetch failed")
		return
	}
	o.snap.SetReservations(ctx, list)
}
