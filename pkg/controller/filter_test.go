package controller

import (
	"reflect"
	"testing"

	"github.com/safesistemas/cejoana/pkg/record"
)

func TestFilterDiacriticInsensitive(t *testing.T) {
	cityStore := &fakeStore{rows: []record.Record{
		{ID: "1", Fields: record.Fields{"nome": "São Paulo", "uf": "SP"}},
		{ID: "2", Fields: record.Fields{"nome": "Recife", "uf": "PE"}},
		{ID: "3", Fields: record.Fields{"nome": "Sapé", "uf": "PB"}},
	}}
	c := New(cities, cityStore)
	drain(c, c.Init())

	c.SetFilter("  sao ")
	if got := ids(c.Visible()); !reflect.DeepEqual(got, []record.ID{"1"}) {
		t.Fatalf("visible = %v", got)
	}
	c.SetFilter("SAPE")
	if got := ids(c.Visible()); !reflect.DeepEqual(got, []record.ID{"3"}) {
		t.Fatalf("visible = %v", got)
	}
}

func TestVisibleIsSubsetAndEqualWhenEmpty(t *testing.T) {
	fs := &fakeStore{rows: []record.Record{rec("1", "Ana"), rec("2", "Beto"), rec("3", "Anabela")}}
	c, _ := newLoaded(t, fs)
	if !reflect.DeepEqual(ids(c.Visible()), ids(c.Records())) {
		t.Fatalf("empty filter must show every row")
	}
	for _, q := range []string{"an", "b", "zzz", "ANA"} {
		c.SetFilter(q)
		for _, v := range c.Visible() {
			if record.Index(c.Records(), v.ID) < 0 {
				t.Fatalf("filter %q: %s not in records", q, v.ID)
			}
		}
	}
	c.SetFilter("")
	if len(c.Visible()) != len(c.Records()) {
		t.Fatalf("visible = %d records = %d", len(c.Visible()), len(c.Records()))
	}
}

func TestFilterResetsCursorOnly(t *testing.T) {
	fs := &fakeStore{rows: []record.Record{rec("1", "Ana"), rec("2", "Beto"), rec("3", "Anabela")}}
	c, _ := newLoaded(t, fs)
	c.Toggle("2")
	c.MoveCursor(2)
	if c.Cursor() != 2 {
		t.Fatalf("cursor = %d", c.Cursor())
	}
	c.SetFilter("ana")
	if c.Cursor() != 0 {
		t.Fatalf("cursor = %d, want reset", c.Cursor())
	}
	if !c.Selected("2") || len(c.Records()) != 3 {
		t.Fatalf("filter touched selection or records")
	}
}

func TestFilterSurvivesRefresh(t *testing.T) {
	fs := &fakeStore{rows: []record.Record{rec("1", "Ana"), rec("2", "Beto")}}
	c, _ := newLoaded(t, fs)
	c.SetFilter("beto")
	fs.rows = append(fs.rows, rec("3", "Roberto"))
	drain(c, c.Fetch())
	if got := ids(c.Visible()); !reflect.DeepEqual(got, []record.ID{"2", "3"}) {
		t.Fatalf("visible = %v", got)
	}
}

func TestCursorClampsAndToggles(t *testing.T) {
	c, _ := newLoaded(t, &fakeStore{rows: anaBeto()})
	c.MoveCursor(-5)
	if c.Cursor() != 0 {
		t.Fatalf("cursor = %d", c.Cursor())
	}
	c.MoveCursor(10)
	if c.Cursor() != 1 {
		t.Fatalf("cursor = %d", c.Cursor())
	}
	if !c.ToggleCurrent() || !c.Selected("2") {
		t.Fatalf("expected Beto selected")
	}
	c.SetFilter("nobody")
	if _, ok := c.Current(); ok || c.ToggleCurrent() {
		t.Fatalf("no current row expected")
	}
}
