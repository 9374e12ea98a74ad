package model

import "strconv"

// Document types accepted for passengers. The document number format depends
// on the type (see the schema catalog).
const (
	DocTypeNationalID      = "DNI"
	DocTypePassport        = "PASAPORTE"
	DocTypeResidencePermit = "NIE"
)

// Passenger mirrors the passenger service resource.
type Passenger struct {
	ID              int       `json:"id,omitempty"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	FechaNacimiento WireTime  `json:"fecha_nacimiento"`
	Nacionalidad    string    `json:"nacionalidad"`
	Telefono        string    `json:"telefono"`
	Direccion       string    `json:"direccion"`
	UsuarioID       int       `json:"usuario_id"`
	CreatedAt       *WireTime `json:"fecha_creacion,omitempty"`
	UpdatedAt       *WireTime `json:"fecha_actualizacion,omitempty"`
}

// PassengerDraft is the raw passenger submission before validation.
type PassengerDraft struct {
	TipoDocumento   Field `json:"tipo_documento"`
	NumeroDocumento Field `json:"numero_documento"`
	FechaNacimiento Field `json:"fecha_nacimiento"`
	Nacionalidad    Field `json:"nacionalidad"`
	Telefono        Field `json:"telefono"`
	Direccion       Field `json:"direccion"`
	UsuarioID       Field `json:"usuario_id"`
}

func (d PassengerDraft) Type() EntityType { return EntityPassenger }

func (d PassengerDraft) Fields() map[string]string {
	return map[string]string{
		"tipo_documento":   trim(d.TipoDocumento),
		"numero_documento": trim(d.NumeroDocumento),
		"fecha_nacimiento": trim(d.FechaNacimiento),
		"nacionalidad":     trim(d.Nacionalidad),
		"telefono":         trim(d.Telefono),
		"direccion":        trim(d.Direccion),
		"usuario_id":       trim(d.UsuarioID),
	}
}

func (d PassengerDraft) Normalize() Passenger {
	userID, _ := strconv.Atoi(trim(d.UsuarioID))
	birth, _ := ParseWireTime(trim(d.FechaNacimiento))
	return Passenger{
		TipoDocumento:   trim(d.TipoDocumento),
		NumeroDocumento: trim(d.NumeroDocumento),
		FechaNacimiento: NewWireTime(birth),
		Nacionalidad:    trim(d.Nacionalidad),
		Telefono:        trim(d.Telefono),
		Direccion:       trim(d.Direccion),
		UsuarioID:       userID,
	}
}
