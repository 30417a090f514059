package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidValue is returned when input cannot be converted to a field's kind.
var ErrInvalidValue = errors.New("record: invalid value")

const (
	// InputLayout is the layout used in edit forms.
	InputLayout = "2006-01-02 15:04"
	// DisplayLayout is the layout used in lists.
	DisplayLayout = "02/01/2006 15:04"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	InputLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	DisplayLayout,
	"02/01/2006",
	"2006-01-02",
}

// Parse converts form input for f into its canonical value. Blank numbers,
// references and timestamps become nil; text is upper-cased and truncated as
// the field declares.
func Parse(f Field, raw string) (any, error) {
	switch f.Kind {
	case KindText:
		v := raw
		if f.Uppercase {
			v = strings.ToUpper(v)
		}
		if f.MaxLength > 0 {
			if r := []rune(v); len(r) > f.MaxLength {
				v = string(r[:f.MaxLength])
			}
		}
		if len(f.Options) > 0 && strings.TrimSpace(v) != "" && !containsString(f.Options, v) {
			return nil, fmt.Errorf("%w: %s must be one of %s", ErrInvalidValue, f.Title(), strings.Join(f.Options, ", "))
		}
		return v, nil
	case KindNumber:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidValue, f.Title(), raw)
		}
		return n, nil
	case KindBool:
		b, ok := parseBool(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects yes or no, got %q", ErrInvalidValue, f.Title(), raw)
		}
		return b, nil
	case KindRef:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, nil
		}
		if err := checkRefID(f, s); err != nil {
			return nil, err
		}
		return ID(s), nil
	case KindTimestamp:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, nil
		}
		t, err := parseTime(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a date like %s, got %q", ErrInvalidValue, f.Title(), InputLayout, raw)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidValue, f.Kind)
}

// Coerce converts a value decoded by a store driver (or JSON) into the
// canonical type for f.
func Coerce(f Field, raw any) (any, error) {
	if b, ok := raw.([]byte); ok {
		raw = string(b)
	}
	switch f.Kind {
	case KindText:
		switch v := raw.(type) {
		case nil:
			return "", nil
		case string:
			return v, nil
		default:
			return fmt.Sprint(v), nil
		}
	case KindNumber:
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.Name, err)
			}
			return n, nil
		case string:
			return Parse(f, v)
		}
	case KindBool:
		switch v := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		case float64:
			return v != 0, nil
		case string:
			return Parse(f, v)
		}
	case KindRef:
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case ID:
			if v.Empty() {
				return nil, nil
			}
			return v, nil
		case string:
			if strings.TrimSpace(v) == "" {
				return nil, nil
			}
			return ID(strings.TrimSpace(v)), nil
		case int64:
			return ID(strconv.FormatInt(v, 10)), nil
		case int:
			return ID(strconv.Itoa(v)), nil
		case float64:
			return ID(strconv.FormatFloat(v, 'f', -1, 64)), nil
		case json.Number:
			return ID(v.String()), nil
		case [16]byte:
			return ID(uuid.UUID(v).String()), nil
		}
	case KindTimestamp:
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case time.Time:
			if v.IsZero() {
				return nil, nil
			}
			return v, nil
		case string:
			return Parse(f, v)
		}
	}
	return nil, fmt.Errorf("%w: %s cannot hold %T", ErrInvalidValue, f.Name, raw)
}

// CoerceFields coerces every schema column of raw.
func CoerceFields(s *Schema, raw map[string]any) (Fields, error) {
	out := make(Fields, len(s.Fields))
	for _, f := range s.Fields {
		v, err := Coerce(f, raw[f.Name])
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// Format renders v the way it is typed into a form.
func Format(f Field, v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case ID:
		return string(t)
	case time.Time:
		return t.Local().Format(InputLayout)
	}
	return fmt.Sprint(v)
}

// Display renders v for a list cell.
func Display(f Field, v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Local().Format(DisplayLayout)
	}
	return Format(f, v)
}

// IsEmpty reports whether a required field would be considered unset.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case ID:
		return t.Empty()
	case time.Time:
		return t.IsZero()
	}
	return false
}

// JSONValue converts a canonical value into something encoding/json renders
// faithfully.
func JSONValue(v any) any {
	switch t := v.(type) {
	case ID:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	}
	return v
}

// JSONFields converts every value of fields with JSONValue.
func JSONFields(fields Fields) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = JSONValue(v)
	}
	return out
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "no", "n", "false", "f", "0", "off", "nao", "não":
		return false, true
	case "yes", "y", "true", "t", "1", "on", "sim", "s":
		return true, true
	}
	return false, false
}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if strings.Contains(layout, "Z07") || strings.Contains(layout, "-07") {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func checkRefID(f Field, s string) error {
	switch f.RefID {
	case IDUUID:
		if _, err := uuid.Parse(s); err != nil {
			return fmt.Errorf("%w: %s expects a uuid, got %q", ErrInvalidValue, f.Title(), s)
		}
	default:
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return fmt.Errorf("%w: %s expects a numeric id, got %q", ErrInvalidValue, f.Title(), s)
		}
	}
	return nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
