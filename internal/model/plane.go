package model

import "strconv"

// Plane statuses as stored by the fleet service. Only an ACTIVO plane may be
// assigned to a flight.
const (
	PlaneStatusActive      = "ACTIVO"
	PlaneStatusInactive    = "INACTIVO"
	PlaneStatusMaintenance = "MANTENIMIENTO"
)

// Plane mirrors the fleet service resource. Inspection dates are optional;
// when present the last inspection may not be in the future and the next one
// must follow it.
type Plane struct {
	ID                 int       `json:"id,omitempty"`
	Matricula          string    `json:"matricula"`
	Modelo             string    `json:"modelo"`
	CapacidadPasajeros int       `json:"capacidad_pasajeros"`
	CapacidadCarga     int       `json:"capacidad_carga"`
	Estado             string    `json:"estado"`
	UltimaRevision     *WireTime `json:"ultima_revision,omitempty"`
	ProximaRevision    *WireTime `json:"proxima_revision,omitempty"`
	CreatedAt          *WireTime `json:"created_at,omitempty"`
	UpdatedAt          *WireTime `json:"updated_at,omitempty"`
}

// PlaneDraft is the raw plane submission before validation.
type PlaneDraft struct {
	Matricula          Field `json:"matricula"`
	Modelo             Field `json:"modelo"`
	CapacidadPasajeros Field `json:"capacidad_pasajeros"`
	CapacidadCarga     Field `json:"capacidad_carga"`
	Estado             Field `json:"estado"`
	UltimaRevision     Field `json:"ultima_revision"`
	ProximaRevision    Field `json:"proxima_revision"`
}

func (d PlaneDraft) Type() EntityType { return EntityPlane }

func (d PlaneDraft) Fields() map[string]string {
	return map[string]string{
		"matricula":           trim(d.Matricula),
		"modelo":              trim(d.Modelo),
		"capacidad_pasajeros": trim(d.CapacidadPasajeros),
		"capacidad_carga":     trim(d.CapacidadCarga),
		"estado":              trim(d.Estado),
		"ultima_revision":     trim(d.UltimaRevision),
		"proxima_revision":    trim(d.ProximaRevision),
	}
}

// Normalize coerces a validated draft into the typed wire payload. It must
// only be called after the draft passed validation; parse errors cannot
// occur at that point and are ignored.
func (d PlaneDraft) Normalize() Plane {
	pax, _ := strconv.Atoi(trim(d.CapacidadPasajeros))
	cargo, _ := strconv.Atoi(trim(d.CapacidadCarga))
	return Plane{
		Matricula:          trim(d.Matricula),
		Modelo:             trim(d.Modelo),
		CapacidadPasajeros: pax,
		CapacidadCarga:     cargo,
		Estado:             trim(d.Estado),
		UltimaRevision:     optionalWireTime(trim(d.UltimaRevision)),
		ProximaRevision:    optionalWireTime(trim(d.ProximaRevision)),
	}
}

// optionalWireTime parses an already validated optional timestamp field,
// expanding date-only values to midnight. Empty input yields nil.
func optionalWireTime(s string) *WireTime {
	if s == "" {
		return nil
	}
	t, err := ParseWireTime(s)
	if err != nil {
		return nil
	}
	w := NewWireTime(t)
	return &w
}
