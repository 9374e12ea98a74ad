package model

import "strconv"

// Reservation statuses and cabin classes as stored by the reservation
// service.
const (
	ReservationStatusPending   = "PENDIENTE"
	ReservationStatusConfirmed = "CONFIRMADA"
	ReservationStatusCancelled = "CANCELADA"

	ClassEconomy  = "ECONOMICA"
	ClassBusiness = "BUSINESS"
	ClassFirst    = "PRIMERA"
)

// Reservation mirrors the reservation service resource. The confirmation
// code is assigned on create when the form leaves it empty.
type Reservation struct {
	ID            int       `json:"id,omitempty"`
	PasajeroID    int       `json:"pasajero_id"`
	VueloID       int       `json:"vuelo_id"`
	Asiento       string    `json:"asiento"`
	Precio        float64   `json:"precio"`
	Clase         string    `json:"clase"`
	Estado        string    `json:"estado"`
	CodigoReserva string    `json:"codigo_reserva,omitempty"`
	FechaReserva  *WireTime `json:"fecha_reserva,omitempty"`
	UpdatedAt     *WireTime `json:"fecha_actualizacion,omitempty"`
}

// ReservationDraft is the raw reservation submission before validation.
type ReservationDraft struct {
	PasajeroID    Field `json:"pasajero_id"`
	VueloID       Field `json:"vuelo_id"`
	Asiento       Field `json:"asiento"`
	Precio        Field `json:"precio"`
	Clase         Field `json:"clase"`
	Estado        Field `json:"estado"`
	CodigoReserva Field `json:"codigo_reserva"`
}

func (d ReservationDraft) Type() EntityType { return EntityReservation }

func (d ReservationDraft) Fields() map[string]string {
	return map[string]string{
		"pasajero_id":    trim(d.PasajeroID),
		"vuelo_id":       trim(d.VueloID),
		"asiento":        trim(d.Asiento),
		"precio":         trim(d.Precio),
		"clase":          trim(d.Clase),
		"estado":         trim(d.Estado),
		"codigo_reserva": trim(d.CodigoReserva),
	}
}

func (d ReservationDraft) Normalize() Reservation {
	passenger, _ := strconv.Atoi(trim(d.PasajeroID))
	flight, _ := strconv.Atoi(trim(d.VueloID))
	price, _ := strconv.ParseFloat(trim(d.Precio), 64)
	return Reservation{
		PasajeroID:    passenger,
		VueloID:       flight,
		Asiento:       trim(d.Asiento),
		Precio:        price,
		Clase:         trim(d.Clase),
		Estado:        trim(d.Estado),
		CodigoReserva: trim(d.CodigoReserva),
	}
}
