package model

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// isoLayout renders dates the way the legacy clients parse them: local
// date-time, no zone, microseconds only when present.
const (
	isoLayout      = "2006-01-02T15:04:05"
	isoLayoutMicro = "2006-01-02T15:04:05.000000"
)

// Timestamp is a nullable database time that marshals to ISO-8601 or null.
type Timestamp struct {
	sql.NullTime
}

// NewTimestamp wraps a non-null time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{sql.NullTime{Time: t, Valid: true}}
}

// ISO returns the formatted time, or nil when the value is NULL.
func (t Timestamp) ISO() *string {
	if !t.Valid {
		return nil
	}
	layout := isoLayout
	if t.Time.Nanosecond()/1000 != 0 {
		layout = isoLayoutMicro
	}
	s := t.Time.Format(layout)
	return &s
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	iso := t.ISO()
	if iso == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*iso)
}

// FlexString accepts either a JSON string or a JSON number and keeps the raw
// text, so "98.6" and 98.6 both bind. Whether a number came unquoted is kept
// for integer coercion.
type FlexString struct {
	Raw     string
	Numeric bool
	Set     bool
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexString{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString{Raw: s, Set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString{Raw: n.String(), Numeric: true, Set: true}
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	if f.Numeric {
		return []byte(f.Raw), nil
	}
	return json.Marshal(f.Raw)
}

// Float parses the value as a float64.
func (f FlexString) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(f.Raw), 64)
}

// Int parses the value as an integer. Unquoted JSON numbers are truncated
// toward zero and must fit in an int64; strings must be integer literals.
func (f FlexString) Int() (int64, error) {
	raw := strings.TrimSpace(f.Raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if !f.Numeric {
		return 0, fmt.Errorf("invalid integer literal %q", f.Raw)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	v = math.Trunc(v)
	if math.IsNaN(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("integer %q out of range", f.Raw)
	}
	return int64(v), nil
}

// Ptr returns the raw text, or nil when the field was absent or null.
func (f FlexString) Ptr() *string {
	if !f.Set {
		return nil
	}
	s := f.Raw
	return &s
}
