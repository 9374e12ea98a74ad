package validate

import (
	"strconv"
	"time"

	"github.com/aerogestion/aerogate/internal/model"
)

const maxFlightDuration = 24 * time.Hour

const maxStopoverMinutes = 1440

// Temporal verifies date and time consistency for a draft: parseability,
// ordering, the non-past rule for newly created flights, and duration
// bounds. now is the submission instant; editing exempts a flight from the
// non-past check. Returns the first violation or nil.
func Temporal(d model.Draft, now time.Time, editing bool) *Violation {
	fields := d.Fields()
	switch d.Type() {
	case model.EntityPlane:
		return planeTemporal(fields, now)
	case model.EntityFlight:
		return flightTemporal(fields, now, editing)
	case model.EntityStopover:
		return stopoverTemporal(fields)
	case model.EntityPassenger:
		return passengerTemporal(fields, now)
	}
	return nil
}

func planeTemporal(fields map[string]string, now time.Time) *Violation {
	last, viol := parseOptional(fields, "ultima_revision")
	if viol != nil {
		return viol
	}
	next, viol := parseOptional(fields, "proxima_revision")
	if viol != nil {
		return viol
	}
	today := truncateToDay(now)
	if last != nil && last.After(today.Add(24*time.Hour-time.Nanosecond)) {
		return temporal("ultima_revision", fields["ultima_revision"], ReasonOrdering,
			"last inspection may not be in the future")
	}
	if next != nil && next.Before(today) {
		return temporal("proxima_revision", fields["proxima_revision"], ReasonOrdering,
			"next inspection may not be in the past")
	}
	if last != nil && next != nil && !next.After(*last) {
		return temporal("proxima_revision", fields["proxima_revision"], ReasonOrdering,
			"next inspection must follow the last one")
	}
	return nil
}

func flightTemporal(fields map[string]string, now time.Time, editing bool) *Violation {
	dep, viol := parseRequired(fields, "fecha_hora_salida")
	if viol != nil {
		return viol
	}
	arr, viol := parseRequired(fields, "fecha_hora_llegada")
	if viol != nil {
		return viol
	}
	if !arr.After(dep) {
		return temporal("fecha_hora_llegada", fields["fecha_hora_llegada"], ReasonOrdering,
			"arrival must be after departure")
	}
	if arr.Sub(dep) > maxFlightDuration {
		return temporal("fecha_hora_llegada", fields["fecha_hora_llegada"], ReasonDurationExceeded,
			"flight duration may not exceed 24 hours")
	}
	// Minute precision avoids spurious failures from the seconds that pass
	// while the form is being filled in.
	if !editing && dep.Truncate(time.Minute).Before(now.Truncate(time.Minute)) {
		return temporal("fecha_hora_salida", fields["fecha_hora_salida"], ReasonPastDeparture,
			"departure may not be in the past")
	}
	return nil
}

func stopoverTemporal(fields map[string]string) *Violation {
	arr, viol := parseRequired(fields, "fecha_hora_llegada")
	if viol != nil {
		return viol
	}
	dep, viol := parseRequired(fields, "fecha_hora_salida")
	if viol != nil {
		return viol
	}
	if !dep.After(arr) {
		return temporal("fecha_hora_salida", fields["fecha_hora_salida"], ReasonOrdering,
			"stopover departure must be after its arrival")
	}
	// The explicit minutes field was already parsed by the format pass.
	if mins, err := strconv.Atoi(fields["duracion_minutos"]); err == nil && mins > maxStopoverMinutes {
		return temporal("duracion_minutos", fields["duracion_minutos"], ReasonDurationExceeded,
			"stopover duration may not exceed 1440 minutes")
	}
	return nil
}

func passengerTemporal(fields map[string]string, now time.Time) *Violation {
	birth, viol := parseRequired(fields, "fecha_nacimiento")
	if viol != nil {
		return viol
	}
	if birth.After(truncateToDay(now).Add(24*time.Hour - time.Nanosecond)) {
		return temporal("fecha_nacimiento", fields["fecha_nacimiento"], ReasonOrdering,
			"birth date may not be in the future")
	}
	return nil
}

func parseRequired(fields map[string]string, name string) (time.Time, *Violation) {
	v := fields[name]
	t, err := model.ParseWireTime(v)
	if err != nil {
		return time.Time{}, temporal(name, v, ReasonUnparseable, "not a valid timestamp")
	}
	return t, nil
}

func parseOptional(fields map[string]string, name string) (*time.Time, *Violation) {
	v := fields[name]
	if v == "" {
		return nil, nil
	}
	t, err := model.ParseWireTime(v)
	if err != nil {
		return nil, temporal(name, v, ReasonUnparseable, "not a valid timestamp")
	}
	return &t, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
