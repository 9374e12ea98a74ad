package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerogestion/aerogate/internal/model"
)

// fakeView is a hand-rolled snapshot for resolver tests.
type fakeView struct {
	planes    []model.Plane
	airports  []model.Airport
	flights   []model.Flight
	pax       []model.Passenger
	terminals map[int][]model.Terminal
}

func (f *fakeView) PlaneByID(id int) (model.Plane, bool) {
	for _, p := range f.planes {
		if p.ID == id {
			return p, true
		}
	}
	return model.Plane{}, false
}

func (f *fakeView) AirportByID(id int) (model.Airport, bool) {
	for _, a := range f.airports {
		if a.ID == id {
			return a, true
		}
	}
	return model.Airport{}, false
}

func (f *fakeView) FlightByID(id int) (model.Flight, bool) {
	for _, fl := range f.flights {
		if fl.ID == id {
			return fl, true
		}
	}
	return model.Flight{}, false
}

func (f *fakeView) PassengerByID(id int) (model.Passenger, bool) {
	for _, p := range f.pax {
		if p.ID == id {
			return p, true
		}
	}
	return model.Passenger{}, false
}

func (f *fakeView) TerminalsOf(airportID int) []model.Terminal { return f.terminals[airportID] }

func (f *fakeView) Airports() []model.Airport { return f.airports }

func baseView() *fakeView {
	return &fakeView{
		planes: []model.Plane{
			{ID: 3, Matricula: "EC-ABC", Estado: model.PlaneStatusActive},
			{ID: 4, Matricula: "EC-DEF", Estado: model.PlaneStatusMaintenance},
		},
		airports: []model.Airport{
			{ID: 1, CodigoIATA: "MAD"},
			{ID: 2, CodigoIATA: "BCN"},
		},
		flights: []model.Flight{{ID: 10, NumeroVuelo: "IB1234"}},
		pax:     []model.Passenger{{ID: 20}},
		terminals: map[int][]model.Terminal{
			1: {{ID: 30, Nombre: "T1"}, {ID: 31, Nombre: "T4"}},
		},
	}
}

func TestFlightReferences(t *testing.T) {
	view := baseView()
	d := flightDraftAt("2026-03-11T10:00:00", "2026-03-11T12:00:00")
	assert.Nil(t, References(d, view, RefContext{}))

	t.Run("unknown origin", func(t *testing.T) {
		d := d
		d.AeropuertoOrigenID = "99"
		v := References(d, view, RefContext{})
		require.NotNil(t, v)
		assert.Equal(t, CodeReferentialNotFound, v.Code)
		assert.Equal(t, "aeropuerto_origen_id", v.Field)
	})

	t.Run("origin equals destination after coercion", func(t *testing.T) {
		d := d
		d.AeropuertoOrigenID = "2"
		d.AeropuertoDestinoID = "02"
		v := References(d, view, RefContext{})
		require.NotNil(t, v)
		assert.Equal(t, CodeFormatInvalid, v.Code)
		assert.Equal(t, "aeropuerto_destino_id", v.Field)
	})

	t.Run("unknown plane", func(t *testing.T) {
		d := d
		d.AvionID = "99"
		v := References(d, view, RefContext{})
		require.NotNil(t, v)
		assert.Equal(t, CodeReferentialNotFound, v.Code)
		assert.Equal(t, "avion_id", v.Field)
	})

	t.Run("plane not active", func(t *testing.T) {
		d := d
		d.AvionID = "4"
		v := References(d, view, RefContext{})
		require.NotNil(t, v)
		assert.Equal(t, CodeReferentialStateInvalid, v.Code)
		assert.Equal(t, "avion_id", v.Field)
	})
}

func TestAirportIATAUniqueness(t *testing.T) {
	view := baseView()
	d := validAirportDraft()

	// MAD already exists in the snapshot.
	v := References(d, view, RefContext{})
	require.NotNil(t, v)
	assert.Equal(t, CodeDuplicateConflict, v.Code)
	assert.Equal(t, "codigo_iata", v.Field)

	// Case-insensitive clash.
	d.CodigoIATA = "MAD"
	view.airports[0].CodigoIATA = "mad"
	v = References(d, view, RefContext{})
	require.NotNil(t, v)
	assert.Equal(t, CodeDuplicateConflict, v.Code)

	// Editing the airport that owns the code is not a clash.
	view.airports[0].CodigoIATA = "MAD"
	assert.Nil(t, References(d, view, RefContext{Editing: true, CurrentID: 1}))

	d.CodigoIATA = "AGP"
	assert.Nil(t, References(d, view, RefContext{}))
}

func TestNestedInfraNeedsOwningAirport(t *testing.T) {
	view := baseView()
	d := model.TerminalDraft{Nombre: "T2", CapacidadPasajeros: "5000", Estado: "ACTIVO"}

	assert.Nil(t, References(d, view, RefContext{AirportID: 1}))

	v := References(d, view, RefContext{AirportID: 99})
	require.NotNil(t, v)
	assert.Equal(t, CodeReferentialNotFound, v.Code)
	assert.Equal(t, "aeropuerto_id", v.Field)
}

func TestStopoverReferences(t *testing.T) {
	view := baseView()
	d := model.StopoverDraft{
		VueloID:          "10",
		AeropuertoID:     "1",
		NumeroEscala:     "1",
		Orden:            "1",
		FechaHoraLlegada: "2026-03-11T10:00:00",
		FechaHoraSalida:  "2026-03-11T11:00:00",
		Estado:           "PROGRAMADA",
		TipoEscala:       "TECNICA",
		DuracionMinutos:  "60",
	}
	assert.Nil(t, References(d, view, RefContext{}))

	t.Run("unknown flight", func(t *testing.T) {
		d := d
		d.VueloID = "11"
		v := References(d, view, RefContext{})
		require.NotNil(t, v)
		assert.Equal(t, "vuelo_id", v.Field)
	})

	t.Run("terminal must belong to the stopover airport", func(t *testing.T) {
		d := d
		d.Terminal = "T4"
		assert.Nil(t, References(d, view, RefContext{}))

		d.Terminal = "T9"
		v := References(d, view, RefContext{})
		require.NotNil(t, v)
		assert.Equal(t, CodeReferentialNotFound, v.Code)
		assert.Equal(t, "terminal", v.Field)
	})
}

func TestReservationReferences(t *testing.T) {
	view := baseView()
	d := model.ReservationDraft{
		PasajeroID: "20",
		VueloID:    "10",
		Asiento:    "12A",
		Precio:     "99.90",
		Clase:      "ECONOMICA",
		Estado:     "PENDIENTE",
	}
	assert.Nil(t, References(d, view, RefContext{}))

	d.PasajeroID = "21"
	v := References(d, view, RefContext{})
	require.NotNil(t, v)
	assert.Equal(t, "pasajero_id", v.Field)
}

func TestPlaneHasNoReferences(t *testing.T) {
	// Planes reference nothing; an empty view must not matter.
	assert.Nil(t, References(validPlaneDraft(), &fakeView{}, RefContext{}))
}
