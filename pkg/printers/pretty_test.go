package printers

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableWithoutColour(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf)
	pp.TitleWithCount("Cities", 2, "city", "cities")
	pp.Table([]string{"ID", "City"}, [][]string{{"1", "Natal"}, {"2", "São Paulo"}})

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("buffers are not terminals, expected no escapes:\n%q", out)
	}
	for _, want := range []string{"Cities - 2 cities", "ID", "Natal", "São Paulo"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf)
	pp.TitleWithCount("Cities", 1, "city", "cities")
	pp.Table([]string{"ID"}, nil)
	if !strings.Contains(buf.String(), "1 city") || !strings.Contains(buf.String(), "none") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, map[string]int{"n": 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got := buf.String(); got != "{\n  \"n\": 1\n}\n" {
		t.Fatalf("got %q", got)
	}
}
