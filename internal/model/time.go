package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Wire layouts accepted from forms and remote services. The entity services
// emit naive ISO 8601 timestamps without a zone suffix; RFC 3339 is accepted
// for tolerance. Date-only values are expanded to midnight when normalized.
const (
	WireDateTimeLayout = "2006-01-02T15:04:05"
	WireDateLayout     = "2006-01-02"
)

var wireLayouts = []string{
	WireDateTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	WireDateLayout,
}

// ParseWireTime parses a timestamp or date in any accepted wire layout.
func ParseWireTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range wireLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// WireTime is a time.Time that marshals in the naive ISO layout the remote
// stores expect and unmarshals any accepted wire layout.
type WireTime struct {
	time.Time
}

// NewWireTime wraps t as a WireTime.
func NewWireTime(t time.Time) WireTime { return WireTime{Time: t} }

func (w WireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Format(WireDateTimeLayout))
}

func (w *WireTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		w.Time = time.Time{}
		return nil
	}
	t, err := ParseWireTime(s)
	if err != nil {
		return err
	}
	w.Time = t
	return nil
}
