// Package schema is the catalog of per-entity field rules. Rules are data,
// not code: each entity type owns an ordered list of field rules covering
// presence, format and numeric bounds, and the validators in
// internal/validate interpret them. The order of the rules fixes which
// violation is reported first.
package schema

import (
	"regexp"

	"github.com/aerogestion/aerogate/internal/model"
)

// Kind describes how a field's raw text is interpreted.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindDate     // date-only, parsed by the temporal checker
	KindDateTime // full timestamp, parsed by the temporal checker
	KindTimezone // must resolve as an IANA zone name
	KindEnum
)

// Stage assigns a rule to the validation stage that interprets it. Presence
// is always checked by the format validator regardless of stage; the stage
// only controls which component owns the deeper checks.
type Stage int

const (
	StageFormat Stage = iota
	StageTemporal
	StageState
)

// Rule is one field constraint. Zero bounds mean "no bound"; Pattern nil
// means "no pattern". Enum lists the accepted wire values for enum rules.
type Rule struct {
	Name     string // wire field name
	Kind     Kind
	Stage    Stage
	Required bool
	Pattern  *regexp.Regexp
	MinLen   int
	MaxLen   int
	Min      *float64
	Max      *float64
	Enum     []string
}

func bound(v float64) *float64 { return &v }

var (
	reMatricula  = regexp.MustCompile(`^[A-Z]{1,2}-[A-Z0-9]{3,5}$`)
	reIATA       = regexp.MustCompile(`^[A-Z]{3}$`)
	reRunway     = regexp.MustCompile(`^[0-3][0-9][LRC]?$`)
	reFlightNum  = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)
	reSeat       = regexp.MustCompile(`^[0-9]{1,2}[A-F]$`)
	reTerminal   = regexp.MustCompile(`^T[0-9]+$`)
	reGate       = regexp.MustCompile(`^[A-Z][0-9]{1,3}$`)
	rePhone      = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	reNation     = regexp.MustCompile(`^[\p{L} ]+$`)
	reResCode    = regexp.MustCompile(`^[A-Z0-9]{6,10}$`)
	reDNI        = regexp.MustCompile(`^[0-9]{8}[A-Z]$`)
	rePassport   = regexp.MustCompile(`^[A-Z]{3}[0-9]{6}$`)
	reNIE        = regexp.MustCompile(`^[XYZ][0-9]{7}[A-Z]$`)
)

// DocumentPattern returns the document number pattern for a passenger
// document type. The second return is false for unknown types.
func DocumentPattern(docType string) (*regexp.Regexp, bool) {
	switch docType {
	case model.DocTypeNationalID:
		return reDNI, true
	case model.DocTypePassport:
		return rePassport, true
	case model.DocTypeResidencePermit:
		return reNIE, true
	}
	return nil, false
}

var planeRules = []Rule{
	{Name: "matricula", Kind: KindText, Required: true, Pattern: reMatricula},
	{Name: "modelo", Kind: KindText, Required: true, MinLen: 2, MaxLen: 50},
	{Name: "capacidad_pasajeros", Kind: KindInt, Required: true, Min: bound(1), Max: bound(1000)},
	{Name: "capacidad_carga", Kind: KindInt, Required: true, Min: bound(1), Max: bound(100000)},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.PlaneStatusActive, model.PlaneStatusInactive, model.PlaneStatusMaintenance}},
	{Name: "ultima_revision", Kind: KindDate, Stage: StageTemporal},
	{Name: "proxima_revision", Kind: KindDate, Stage: StageTemporal},
}

var airportRules = []Rule{
	{Name: "codigo_iata", Kind: KindText, Required: true, Pattern: reIATA},
	{Name: "nombre", Kind: KindText, Required: true, MinLen: 1, MaxLen: 100},
	{Name: "ciudad", Kind: KindText, Required: true, MinLen: 1, MaxLen: 100},
	{Name: "pais", Kind: KindText, Required: true, MinLen: 1, MaxLen: 100},
	{Name: "latitud", Kind: KindFloat, Required: true, Min: bound(-90), Max: bound(90)},
	{Name: "longitud", Kind: KindFloat, Required: true, Min: bound(-180), Max: bound(180)},
	{Name: "zona_horaria", Kind: KindTimezone, Required: true},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.InfraStatusActive, model.InfraStatusInactive, model.InfraStatusMaintenance}},
}

var terminalRules = []Rule{
	{Name: "nombre", Kind: KindText, Required: true, Pattern: reTerminal},
	{Name: "capacidad_pasajeros", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.InfraStatusActive, model.InfraStatusInactive, model.InfraStatusMaintenance}},
}

var runwayRules = []Rule{
	{Name: "numero", Kind: KindText, Required: true, Pattern: reRunway},
	{Name: "longitud_metros", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "ancho_metros", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "superficie", Kind: KindEnum, Required: true,
		Enum: []string{model.SurfaceAsphalt, model.SurfaceConcrete, model.SurfaceDirt}},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.InfraStatusActive, model.InfraStatusInactive, model.InfraStatusMaintenance}},
}

var flightRules = []Rule{
	{Name: "numero_vuelo", Kind: KindText, Required: true, Pattern: reFlightNum},
	{Name: "fecha_hora_salida", Kind: KindDateTime, Stage: StageTemporal, Required: true},
	{Name: "fecha_hora_llegada", Kind: KindDateTime, Stage: StageTemporal, Required: true},
	{Name: "aeropuerto_origen_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "aeropuerto_destino_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "avion_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.FlightStatusScheduled, model.FlightStatusInFlight, model.FlightStatusCompleted, model.FlightStatusCancelled}},
}

var stopoverRules = []Rule{
	{Name: "vuelo_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "aeropuerto_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "numero_escala", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "orden", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "fecha_hora_llegada", Kind: KindDateTime, Stage: StageTemporal, Required: true},
	{Name: "fecha_hora_salida", Kind: KindDateTime, Stage: StageTemporal, Required: true},
	{Name: "tipo_escala", Kind: KindEnum, Required: true,
		Enum: []string{model.StopoverTypeTechnical, model.StopoverTypeCommercial}},
	// The 1440 minute ceiling is a duration bound and belongs to the
	// temporal checker, not the range pass.
	{Name: "duracion_minutos", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "terminal", Kind: KindText, Pattern: reTerminal},
	{Name: "puerta", Kind: KindText, Pattern: reGate},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.StopoverStatusScheduled, model.StopoverStatusInProgress, model.StopoverStatusCompleted, model.StopoverStatusCancelled}},
}

var passengerRules = []Rule{
	{Name: "tipo_documento", Kind: KindEnum, Required: true,
		Enum: []string{model.DocTypeNationalID, model.DocTypePassport, model.DocTypeResidencePermit}},
	{Name: "numero_documento", Kind: KindText, Required: true, MinLen: 1, MaxLen: 20},
	{Name: "fecha_nacimiento", Kind: KindDate, Stage: StageTemporal, Required: true},
	{Name: "nacionalidad", Kind: KindText, Required: true, Pattern: reNation, MinLen: 1, MaxLen: 50},
	{Name: "telefono", Kind: KindText, Required: true, Pattern: rePhone},
	{Name: "direccion", Kind: KindText, Required: true, MinLen: 5, MaxLen: 200},
	{Name: "usuario_id", Kind: KindInt, Required: true, Min: bound(1)},
}

var reservationRules = []Rule{
	{Name: "pasajero_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "vuelo_id", Kind: KindInt, Required: true, Min: bound(1)},
	{Name: "asiento", Kind: KindText, Required: true, Pattern: reSeat},
	{Name: "precio", Kind: KindFloat, Required: true, Min: bound(0.01)},
	{Name: "clase", Kind: KindEnum, Required: true,
		Enum: []string{model.ClassEconomy, model.ClassBusiness, model.ClassFirst}},
	{Name: "estado", Kind: KindEnum, Stage: StageState, Required: true,
		Enum: []string{model.ReservationStatusPending, model.ReservationStatusConfirmed, model.ReservationStatusCancelled}},
	{Name: "codigo_reserva", Kind: KindText, Pattern: reResCode},
}

var catalog = map[model.EntityType][]Rule{
	model.EntityPlane:       planeRules,
	model.EntityAirport:     airportRules,
	model.EntityTerminal:    terminalRules,
	model.EntityRunway:      runwayRules,
	model.EntityFlight:      flightRules,
	model.EntityStopover:    stopoverRules,
	model.EntityPassenger:   passengerRules,
	model.EntityReservation: reservationRules,
}

// For returns the ordered rule list for an entity type. Unknown types yield
// nil, which validators treat as "no rules".
func For(t model.EntityType) []Rule { return catalog[t] }

// StatusSet returns the accepted status values for an entity type, or nil
// when the entity carries no status field.
func StatusSet(t model.EntityType) []string {
	for _, r := range catalog[t] {
		if r.Stage == StageState {
			return r.Enum
		}
	}
	return nil
}
