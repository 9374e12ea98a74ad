package model

import "strconv"

// Stopover statuses and types as stored by the stopover service.
const (
	StopoverStatusScheduled  = "PROGRAMADA"
	StopoverStatusInProgress = "EN_PROGRESO"
	StopoverStatusCompleted  = "COMPLETADA"
	StopoverStatusCancelled  = "CANCELADA"

	StopoverTypeTechnical  = "TECNICA"
	StopoverTypeCommercial = "COMERCIAL"
)

// Stopover is an intermediate touchpoint of a flight at an airport, ordered
// by its sequence number. The terminal, when given, must name a terminal of
// the referenced airport.
type Stopover struct {
	ID               int       `json:"id,omitempty"`
	VueloID          int       `json:"vuelo_id"`
	AeropuertoID     int       `json:"aeropuerto_id"`
	NumeroEscala     int       `json:"numero_escala"`
	Orden            int       `json:"orden"`
	FechaHoraLlegada WireTime  `json:"fecha_hora_llegada"`
	FechaHoraSalida  WireTime  `json:"fecha_hora_salida"`
	Estado           string    `json:"estado"`
	TipoEscala       string    `json:"tipo_escala"`
	DuracionMinutos  int       `json:"duracion_minutos"`
	Terminal         string    `json:"terminal,omitempty"`
	Puerta           string    `json:"puerta,omitempty"`
	CreatedAt        *WireTime `json:"created_at,omitempty"`
	UpdatedAt        *WireTime `json:"updated_at,omitempty"`
}

// StopoverDraft is the raw stopover submission before validation.
type StopoverDraft struct {
	VueloID          Field `json:"vuelo_id"`
	AeropuertoID     Field `json:"aeropuerto_id"`
	NumeroEscala     Field `json:"numero_escala"`
	Orden            Field `json:"orden"`
	FechaHoraLlegada Field `json:"fecha_hora_llegada"`
	FechaHoraSalida  Field `json:"fecha_hora_salida"`
	Estado           Field `json:"estado"`
	TipoEscala       Field `json:"tipo_escala"`
	DuracionMinutos  Field `json:"duracion_minutos"`
	Terminal         Field `json:"terminal"`
	Puerta           Field `json:"puerta"`
}

func (d StopoverDraft) Type() EntityType { return EntityStopover }

func (d StopoverDraft) Fields() map[string]string {
	return map[string]string{
		"vuelo_id":           trim(d.VueloID),
		"aeropuerto_id":      trim(d.AeropuertoID),
		"numero_escala":      trim(d.NumeroEscala),
		"orden":              trim(d.Orden),
		"fecha_hora_llegada": trim(d.FechaHoraLlegada),
		"fecha_hora_salida":  trim(d.FechaHoraSalida),
		"estado":             trim(d.Estado),
		"tipo_escala":        trim(d.TipoEscala),
		"duracion_minutos":   trim(d.DuracionMinutos),
		"terminal":           trim(d.Terminal),
		"puerta":             trim(d.Puerta),
	}
}

func (d StopoverDraft) Normalize() Stopover {
	flight, _ := strconv.Atoi(trim(d.VueloID))
	airport, _ := strconv.Atoi(trim(d.AeropuertoID))
	seq, _ := strconv.Atoi(trim(d.NumeroEscala))
	order, _ := strconv.Atoi(trim(d.Orden))
	duration, _ := strconv.Atoi(trim(d.DuracionMinutos))
	arr, _ := ParseWireTime(trim(d.FechaHoraLlegada))
	dep, _ := ParseWireTime(trim(d.FechaHoraSalida))
	return Stopover{
		VueloID:          flight,
		AeropuertoID:     airport,
		NumeroEscala:     seq,
		Orden:            order,
		FechaHoraLlegada: NewWireTime(arr),
		FechaHoraSalida:  NewWireTime(dep),
		Estado:           trim(d.Estado),
		TipoEscala:       trim(d.TipoEscala),
		DuracionMinutos:  duration,
		Terminal:         trim(d.Terminal),
		Puerta:           trim(d.Puerta),
	}
}
