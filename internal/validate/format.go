package validate

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/aerogestion/aerogate/internal/model"
	"github.com/aerogestion/aerogate/internal/schema"
)

// Format checks a draft against the schema catalog for its entity type and
// returns the first violated rule, or nil. Checks run in three passes in
// catalog order: required presence first, then format (patterns, enums,
// numeric parseability, timezone resolution), then numeric range. A value
// that fails to parse as a number is a format violation, never a range one.
// Date and datetime fields only get the presence check here; parsing them
// belongs to the temporal checker. Status enums belong to the state guard.
func Format(d model.Draft) *Violation {
	rules := schema.For(d.Type())
	fields := d.Fields()

	for _, r := range rules {
		if r.Required && fields[r.Name] == "" {
			return missing(r.Name)
		}
	}

	for _, r := range rules {
		v := fields[r.Name]
		if v == "" || r.Stage != schema.StageFormat {
			continue
		}
		if viol := checkFormat(r, v); viol != nil {
			return viol
		}
	}
	if viol := checkDocumentNumber(d.Type(), fields); viol != nil {
		return viol
	}

	for _, r := range rules {
		v := fields[r.Name]
		if v == "" || r.Stage != schema.StageFormat {
			continue
		}
		if viol := checkRange(r, v); viol != nil {
			return viol
		}
	}
	return nil
}

func checkFormat(r schema.Rule, v string) *Violation {
	switch r.Kind {
	case schema.KindInt:
		if _, err := strconv.Atoi(v); err != nil {
			return badFormat(r.Name, v, "not a valid integer")
		}
	case schema.KindFloat:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return badFormat(r.Name, v, "not a valid number")
		}
	case schema.KindEnum:
		for _, e := range r.Enum {
			if v == e {
				return nil
			}
		}
		return badFormat(r.Name, v, fmt.Sprintf("must be one of %v", r.Enum))
	case schema.KindTimezone:
		if _, err := time.LoadLocation(v); err != nil {
			return badFormat(r.Name, v, "not a resolvable timezone")
		}
	case schema.KindText:
		if r.Pattern != nil && !r.Pattern.MatchString(v) {
			return badFormat(r.Name, v, "does not match the required format")
		}
		n := utf8.RuneCountInString(v)
		if r.MinLen > 0 && n < r.MinLen {
			return badFormat(r.Name, v, fmt.Sprintf("must be at least %d characters", r.MinLen))
		}
		if r.MaxLen > 0 && n > r.MaxLen {
			return badFormat(r.Name, v, fmt.Sprintf("must be at most %d characters", r.MaxLen))
		}
	}
	return nil
}

// checkDocumentNumber applies the per-document-type pattern for passengers.
// It runs only when the document type itself already passed its enum check.
func checkDocumentNumber(t model.EntityType, fields map[string]string) *Violation {
	if t != model.EntityPassenger {
		return nil
	}
	docType := fields["tipo_documento"]
	docNum := fields["numero_documento"]
	if docType == "" || docNum == "" {
		return nil
	}
	pattern, ok := schema.DocumentPattern(docType)
	if !ok {
		return nil
	}
	if !pattern.MatchString(docNum) {
		return badFormat("numero_documento", docNum,
			fmt.Sprintf("does not match the %s document format", docType))
	}
	return nil
}

func checkRange(r schema.Rule, v string) *Violation {
	var n float64
	switch r.Kind {
	case schema.KindInt:
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil // already reported as a format violation
		}
		n = float64(i)
	case schema.KindFloat:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		n = f
	default:
		return nil
	}
	if r.Min != nil && n < *r.Min {
		return outOfRange(r.Name, v, fmt.Sprintf("must be at least %v", *r.Min))
	}
	if r.Max != nil && n > *r.Max {
		return outOfRange(r.Name, v, fmt.Sprintf("must be at most %v", *r.Max))
	}
	return nil
}
