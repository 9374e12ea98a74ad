package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerogestion/aerogate/internal/model"
)

func TestCatalogCoversEveryEntity(t *testing.T) {
	types := []model.EntityType{
		model.EntityPlane, model.EntityAirport, model.EntityTerminal,
		model.EntityRunway, model.EntityFlight, model.EntityStopover,
		model.EntityPassenger, model.EntityReservation,
	}
	for _, et := range types {
		assert.NotEmpty(t, For(et), string(et))
	}
	assert.Nil(t, For(model.EntityType("unknown")))
}

func TestStatusSets(t *testing.T) {
	assert.ElementsMatch(t, []string{"ACTIVO", "INACTIVO", "MANTENIMIENTO"}, StatusSet(model.EntityPlane))
	assert.ElementsMatch(t, []string{"PROGRAMADO", "EN_VUELO", "COMPLETADO", "CANCELADO"}, StatusSet(model.EntityFlight))
	assert.ElementsMatch(t, []string{"PROGRAMADA", "EN_PROGRESO", "COMPLETADA", "CANCELADA"}, StatusSet(model.EntityStopover))
	assert.ElementsMatch(t, []string{"PENDIENTE", "CONFIRMADA", "CANCELADA"}, StatusSet(model.EntityReservation))
	assert.Nil(t, StatusSet(model.EntityPassenger))
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		entity model.EntityType
		field  string
		value  string
		ok     bool
	}{
		{model.EntityPlane, "matricula", "EC-ABC", true},
		{model.EntityPlane, "matricula", "E-123", true},
		{model.EntityPlane, "matricula", "ABC-123", false},
		{model.EntityAirport, "codigo_iata", "MAD", true},
		{model.EntityAirport, "codigo_iata", "MADR", false},
		{model.EntityAirport, "codigo_iata", "mad", false},
		{model.EntityFlight, "numero_vuelo", "IB1234", true},
		{model.EntityFlight, "numero_vuelo", "IB123", false},
		{model.EntityFlight, "numero_vuelo", "1234IB", false},
		{model.EntityRunway, "numero", "09L", true},
		{model.EntityRunway, "numero", "27", true},
		{model.EntityRunway, "numero", "36C", true},
		{model.EntityRunway, "numero", "40", false},
		{model.EntityStopover, "terminal", "T1", true},
		{model.EntityStopover, "terminal", "Terminal1", false},
		{model.EntityStopover, "puerta", "B22", true},
		{model.EntityStopover, "puerta", "22B", false},
		{model.EntityReservation, "asiento", "1A", true},
		{model.EntityReservation, "asiento", "12F", true},
		{model.EntityReservation, "asiento", "12G", false},
		{model.EntityReservation, "asiento", "123A", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.entity)+"/"+tt.field+"/"+tt.value, func(t *testing.T) {
			rule := findRule(t, tt.entity, tt.field)
			require.NotNil(t, rule.Pattern)
			assert.Equal(t, tt.ok, rule.Pattern.MatchString(tt.value))
		})
	}
}

func TestDocumentPattern(t *testing.T) {
	dni, ok := DocumentPattern("DNI")
	require.True(t, ok)
	assert.True(t, dni.MatchString("12345678Z"))
	assert.False(t, dni.MatchString("12345678"))

	passport, ok := DocumentPattern("PASAPORTE")
	require.True(t, ok)
	assert.True(t, passport.MatchString("ABC123456"))

	nie, ok := DocumentPattern("NIE")
	require.True(t, ok)
	assert.True(t, nie.MatchString("Y7654321K"))

	_, ok = DocumentPattern("CEDULA")
	assert.False(t, ok)
}

func TestStopoverDurationHasNoCatalogCeiling(t *testing.T) {
	// The 1440 minute ceiling is a temporal rule; the catalog only keeps the
	// positive floor.
	r := findRule(t, model.EntityStopover, "duracion_minutos")
	require.NotNil(t, r.Min)
	assert.Equal(t, float64(1), *r.Min)
	assert.Nil(t, r.Max)
}

func findRule(t *testing.T, et model.EntityType, name string) Rule {
	t.Helper()
	for _, r := range For(et) {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no rule %q for %s", name, et)
	return Rule{}
}
