package record

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	f := Field{Name: "idade", Kind: KindNumber}
	v, err := Parse(f, " 42 ")
	if err != nil || v != 42.0 {
		t.Fatalf("Parse = %#v, %v", v, err)
	}
	v, err = Parse(f, "")
	if err != nil || v != nil {
		t.Fatalf("blank number should be absent, got %#v, %v", v, err)
	}
	v, err = Parse(f, "1,5")
	if err != nil || v != 1.5 {
		t.Fatalf("comma decimal = %#v, %v", v, err)
	}
	if _, err := Parse(f, "abc"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestParseTextNormalizations(t *testing.T) {
	uf := Field{Name: "uf", Kind: KindText, Uppercase: true, MaxLength: 2}
	v, err := Parse(uf, "mto")
	if err != nil || v != "MT" {
		t.Fatalf("Parse uf = %#v, %v", v, err)
	}
	sexo := Field{Name: "sexo", Kind: KindText, Options: []string{"M", "F"}, Uppercase: true}
	if v, err := Parse(sexo, "f"); err != nil || v != "F" {
		t.Fatalf("Parse sexo = %#v, %v", v, err)
	}
	if v, err := Parse(sexo, ""); err != nil || v != "" {
		t.Fatalf("blank option should be accepted, got %#v, %v", v, err)
	}
	if _, err := Parse(sexo, "x"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected option error, got %v", err)
	}
}

func TestParseRef(t *testing.T) {
	f := Field{Name: "cidade_id", Kind: KindRef, Ref: "cidades", RefID: IDSerial}
	if v, err := Parse(f, "7"); err != nil || v != ID("7") {
		t.Fatalf("Parse ref = %#v, %v", v, err)
	}
	if v, err := Parse(f, " "); err != nil || v != nil {
		t.Fatalf("blank ref should be absent, got %#v, %v", v, err)
	}
	if _, err := Parse(f, "seven"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid serial id, got %v", err)
	}
	u := Field{Name: "user_id", Kind: KindRef, Ref: "profiles", RefID: IDUUID}
	if _, err := Parse(u, "9b2f2a52-5f0f-4d2b-9d35-6c1d1a0f3f10"); err != nil {
		t.Fatalf("uuid ref: %v", err)
	}
	if _, err := Parse(u, "12"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid uuid, got %v", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	f := Field{Name: "data_atendimento", Kind: KindTimestamp}
	for _, in := range []string{"2024-05-01 10:30", "2024-05-01T10:30", "01/05/2024 10:30"} {
		v, err := Parse(f, in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		ts := v.(time.Time)
		if ts.Year() != 2024 || ts.Month() != time.May || ts.Day() != 1 || ts.Hour() != 10 || ts.Minute() != 30 {
			t.Fatalf("Parse(%q) = %v", in, ts)
		}
	}
	if _, err := Parse(f, "yesterday"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid timestamp, got %v", err)
	}
}

func TestParseBool(t *testing.T) {
	f := Field{Name: "ativo", Kind: KindBool}
	for in, want := range map[string]bool{"yes": true, "sim": true, "true": true, "no": false, "": false, "0": false} {
		v, err := Parse(f, in)
		if err != nil || v != want {
			t.Fatalf("Parse(%q) = %#v, %v", in, v, err)
		}
	}
	if _, err := Parse(f, "maybe"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCoerceDriverValues(t *testing.T) {
	num := Field{Name: "idade", Kind: KindNumber}
	if v, _ := Coerce(num, int64(30)); v != 30.0 {
		t.Fatalf("int64 -> %#v", v)
	}
	if v, _ := Coerce(num, json.Number("12.5")); v != 12.5 {
		t.Fatalf("json.Number -> %#v", v)
	}
	ref := Field{Name: "cidade_id", Kind: KindRef, Ref: "cidades"}
	if v, _ := Coerce(ref, int64(3)); v != ID("3") {
		t.Fatalf("ref int64 -> %#v", v)
	}
	if v, _ := Coerce(ref, float64(3)); v != ID("3") {
		t.Fatalf("ref float64 -> %#v", v)
	}
	text := Field{Name: "nome", Kind: KindText}
	if v, _ := Coerce(text, []byte("Ana")); v != "Ana" {
		t.Fatalf("bytes -> %#v", v)
	}
	if v, _ := Coerce(text, nil); v != "" {
		t.Fatalf("nil text -> %#v", v)
	}
	ts := Field{Name: "data", Kind: KindTimestamp}
	if v, err := Coerce(ts, "2024-05-01T10:30:00Z"); err != nil || !v.(time.Time).Equal(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("timestamp string -> %#v, %v", v, err)
	}
	if _, err := Coerce(num, struct{}{}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestFormatRoundTripsThroughParse(t *testing.T) {
	ts := Field{Name: "data", Kind: KindTimestamp}
	when := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	v, err := Parse(ts, Format(ts, when))
	if err != nil || !v.(time.Time).Equal(when) {
		t.Fatalf("round trip = %#v, %v", v, err)
	}
	num := Field{Name: "idade", Kind: KindNumber}
	if got := Format(num, 30.0); got != "30" {
		t.Fatalf("Format number = %q", got)
	}
	b := Field{Name: "ativo", Kind: KindBool}
	if got := Format(b, true); got != "yes" {
		t.Fatalf("Format bool = %q", got)
	}
	if got := Display(ts, when); got != "01/05/2024 10:30" {
		t.Fatalf("Display timestamp = %q", got)
	}
}
