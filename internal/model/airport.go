package model

import "strconv"

// Infrastructure statuses shared by airports, terminals and runways.
const (
	InfraStatusActive      = "ACTIVO"
	InfraStatusInactive    = "INACTIVO"
	InfraStatusMaintenance = "MANTENIMIENTO"
)

// Runway surfaces accepted by the airport service.
const (
	SurfaceAsphalt  = "ASFALTO"
	SurfaceConcrete = "HORMIGON"
	SurfaceDirt     = "TIERRA"
)

// Airport mirrors the airport service resource. The IATA code is unique
// across the collection; latitude and longitude are decimal degrees and the
// timezone must be a resolvable IANA zone name.
type Airport struct {
	ID          int        `json:"id,omitempty"`
	CodigoIATA  string     `json:"codigo_iata"`
	Nombre      string     `json:"nombre"`
	Ciudad      string     `json:"ciudad"`
	Pais        string     `json:"pais"`
	Latitud     float64    `json:"latitud"`
	Longitud    float64    `json:"longitud"`
	ZonaHoraria string     `json:"zona_horaria"`
	Estado      string     `json:"estado"`
	Terminales  []Terminal `json:"terminales,omitempty"`
	Pistas      []Runway   `json:"pistas,omitempty"`
	CreatedAt   *WireTime  `json:"created_at,omitempty"`
	UpdatedAt   *WireTime  `json:"updated_at,omitempty"`
}

// Terminal belongs to exactly one airport; the owning airport id comes from
// the nested route, never from the form.
type Terminal struct {
	ID                 int       `json:"id,omitempty"`
	Nombre             string    `json:"nombre"`
	CapacidadPasajeros int       `json:"capacidad_pasajeros"`
	Estado             string    `json:"estado"`
	AeropuertoID       int       `json:"aeropuerto_id,omitempty"`
	CreatedAt          *WireTime `json:"created_at,omitempty"`
	UpdatedAt          *WireTime `json:"updated_at,omitempty"`
}

// Runway belongs to exactly one airport.
type Runway struct {
	ID             int       `json:"id,omitempty"`
	Numero         string    `json:"numero"`
	LongitudMetros int       `json:"longitud_metros"`
	AnchoMetros    int       `json:"ancho_metros"`
	Superficie     string    `json:"superficie"`
	Estado         string    `json:"estado"`
	AeropuertoID   int       `json:"aeropuerto_id,omitempty"`
	CreatedAt      *WireTime `json:"created_at,omitempty"`
	UpdatedAt      *WireTime `json:"updated_at,omitempty"`
}

// AirportDraft is the raw airport submission before validation.
type AirportDraft struct {
	CodigoIATA  Field `json:"codigo_iata"`
	Nombre      Field `json:"nombre"`
	Ciudad      Field `json:"ciudad"`
	Pais        Field `json:"pais"`
	Latitud     Field `json:"latitud"`
	Longitud    Field `json:"longitud"`
	ZonaHoraria Field `json:"zona_horaria"`
	Estado      Field `json:"estado"`
}

func (d AirportDraft) Type() EntityType { return EntityAirport }

func (d AirportDraft) Fields() map[string]string {
	return map[string]string{
		"codigo_iata":  trim(d.CodigoIATA),
		"nombre":       trim(d.Nombre),
		"ciudad":       trim(d.Ciudad),
		"pais":         trim(d.Pais),
		"latitud":      trim(d.Latitud),
		"longitud":     trim(d.Longitud),
		"zona_horaria": trim(d.ZonaHoraria),
		"estado":       trim(d.Estado),
	}
}

func (d AirportDraft) Normalize() Airport {
	lat, _ := strconv.ParseFloat(trim(d.Latitud), 64)
	lon, _ := strconv.ParseFloat(trim(d.Longitud), 64)
	return Airport{
		CodigoIATA:  trim(d.CodigoIATA),
		Nombre:      trim(d.Nombre),
		Ciudad:      trim(d.Ciudad),
		Pais:        trim(d.Pais),
		Latitud:     lat,
		Longitud:    lon,
		ZonaHoraria: trim(d.ZonaHoraria),
		Estado:      trim(d.Estado),
	}
}

// TerminalDraft is the raw terminal submission. The airport it belongs to is
// carried separately because it is taken from the route.
type TerminalDraft struct {
	Nombre             Field `json:"nombre"`
	CapacidadPasajeros Field `json:"capacidad_pasajeros"`
	Estado             Field `json:"estado"`
}

func (d TerminalDraft) Type() EntityType { return EntityTerminal }

func (d TerminalDraft) Fields() map[string]string {
	return map[string]string{
		"nombre":              trim(d.Nombre),
		"capacidad_pasajeros": trim(d.CapacidadPasajeros),
		"estado":              trim(d.Estado),
	}
}

func (d TerminalDraft) Normalize() Terminal {
	pax, _ := strconv.Atoi(trim(d.CapacidadPasajeros))
	return Terminal{
		Nombre:             trim(d.Nombre),
		CapacidadPasajeros: pax,
		Estado:             trim(d.Estado),
	}
}

// RunwayDraft is the raw runway submission.
type RunwayDraft struct {
	Numero         Field `json:"numero"`
	LongitudMetros Field `json:"longitud_metros"`
	AnchoMetros    Field `json:"ancho_metros"`
	Superficie     Field `json:"superficie"`
	Estado         Field `json:"estado"`
}

func (d RunwayDraft) Type() EntityType { return EntityRunway }

func (d RunwayDraft) Fields() map[string]string {
	return map[string]string{
		"numero":          trim(d.Numero),
		"longitud_metros": trim(d.LongitudMetros),
		"ancho_metros":    trim(d.AnchoMetros),
		"superficie":      trim(d.Superficie),
		"estado":          trim(d.Estado),
	}
}

func (d RunwayDraft) Normalize() Runway {
	length, _ := strconv.Atoi(trim(d.LongitudMetros))
	width, _ := strconv.Atoi(trim(d.AnchoMetros))
	return Runway{
		Numero:         trim(d.Numero),
		LongitudMetros: length,
		AnchoMetros:    width,
		Superficie:     trim(d.Superficie),
		Estado:         trim(d.Estado),
	}
}
