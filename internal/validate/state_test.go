package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerogestion/aerogate/internal/model"
)

func TestStateMembership(t *testing.T) {
	d := validPlaneDraft()
	assert.Nil(t, State(d))

	d.Estado = "VOLANDO"
	v := State(d)
	require.NotNil(t, v)
	assert.Equal(t, CodeStateInvalid, v.Code)
	assert.Equal(t, "estado", v.Field)
	assert.Equal(t, "VOLANDO", v.Value)
}

func TestStateAnyMemberIsLegal(t *testing.T) {
	// No transition graph: every member of the set passes, whatever the
	// entity's previous status was.
	for _, s := range []string{"PROGRAMADO", "EN_VUELO", "COMPLETADO", "CANCELADO"} {
		d := flightDraftAt("2026-03-11T10:00:00", "2026-03-11T12:00:00")
		d.Estado = model.Field(s)
		assert.Nil(t, State(d), s)
	}
}

func TestStateEmptyValueIsNotThisGuardsProblem(t *testing.T) {
	d := validPlaneDraft()
	d.Estado = ""
	assert.Nil(t, State(d))
}

func TestStateEntitiesWithoutStatus(t *testing.T) {
	assert.Nil(t, State(validPassengerDraft()))
}
