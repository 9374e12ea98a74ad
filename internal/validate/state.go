package validate

import (
	"fmt"

	"github.com/aerogestion/aerogate/internal/model"
	"github.com/aerogestion/aerogate/internal/schema"
)

// State checks that the submitted status is a member of the finite set for
// the entity type. Any member is legal regardless of the entity's previous
// status; there is deliberately no transition graph. Entities without a
// status field always pass. Missing values are the format validator's
// concern, not this guard's.
func State(d model.Draft) *Violation {
	set := schema.StatusSet(d.Type())
	if set == nil {
		return nil
	}
	v := d.Fields()["estado"]
	if v == "" {
		return nil
	}
	for _, s := range set {
		if v == s {
			return nil
		}
	}
	return &Violation{
		Code:   CodeStateInvalid,
		Field:  "estado",
		Value:  v,
		Detail: fmt.Sprintf("must be one of %v", set),
	}
}
