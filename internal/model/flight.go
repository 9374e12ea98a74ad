package model

import "strconv"

// Flight statuses as stored by the flight service.
const (
	FlightStatusScheduled = "PROGRAMADO"
	FlightStatusInFlight  = "EN_VUELO"
	FlightStatusCompleted = "COMPLETADO"
	FlightStatusCancelled = "CANCELADO"
)

// Flight mirrors the flight service resource. Origin and destination must be
// distinct existing airports and the assigned plane must exist and be ACTIVO.
type Flight struct {
	ID                  int       `json:"id,omitempty"`
	NumeroVuelo         string    `json:"numero_vuelo"`
	FechaHoraSalida     WireTime  `json:"fecha_hora_salida"`
	FechaHoraLlegada    WireTime  `json:"fecha_hora_llegada"`
	AeropuertoOrigenID  int       `json:"aeropuerto_origen_id"`
	AeropuertoDestinoID int       `json:"aeropuerto_destino_id"`
	AvionID             int       `json:"avion_id"`
	Estado              string    `json:"estado"`
	CreatedAt           *WireTime `json:"created_at,omitempty"`
	UpdatedAt           *WireTime `json:"updated_at,omitempty"`
}

// FlightDraft is the raw flight submission before validation.
type FlightDraft struct {
	NumeroVuelo         Field `json:"numero_vuelo"`
	FechaHoraSalida     Field `json:"fecha_hora_salida"`
	FechaHoraLlegada    Field `json:"fecha_hora_llegada"`
	AeropuertoOrigenID  Field `json:"aeropuerto_origen_id"`
	AeropuertoDestinoID Field `json:"aeropuerto_destino_id"`
	AvionID             Field `json:"avion_id"`
	Estado              Field `json:"estado"`
}

func (d FlightDraft) Type() EntityType { return EntityFlight }

func (d FlightDraft) Fields() map[string]string {
	return map[string]string{
		"numero_vuelo":          trim(d.NumeroVuelo),
		"fecha_hora_salida":     trim(d.FechaHoraSalida),
		"fecha_hora_llegada":    trim(d.FechaHoraLlegada),
		"aeropuerto_origen_id":  trim(d.AeropuertoOrigenID),
		"aeropuerto_destino_id": trim(d.AeropuertoDestinoID),
		"avion_id":              trim(d.AvionID),
		"estado":                trim(d.Estado),
	}
}

func (d FlightDraft) Normalize() Flight {
	origin, _ := strconv.Atoi(trim(d.AeropuertoOrigenID))
	dest, _ := strconv.Atoi(trim(d.AeropuertoDestinoID))
	plane, _ := strconv.Atoi(trim(d.AvionID))
	dep, _ := ParseWireTime(trim(d.FechaHoraSalida))
	arr, _ := ParseWireTime(trim(d.FechaHoraLlegada))
	return Flight{
		NumeroVuelo:         trim(d.NumeroVuelo),
		FechaHoraSalida:     NewWireTime(dep),
		FechaHoraLlegada:    NewWireTime(arr),
		AeropuertoOrigenID:  origin,
		AeropuertoDestinoID: dest,
		AvionID:             plane,
		Estado:              trim(d.Estado),
	}
}
