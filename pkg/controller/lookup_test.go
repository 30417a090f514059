package controller

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/safesistemas/cejoana/pkg/record"
)

var visits = record.NewSchema("atendimentos").
	Noun("attendance", "attendances").
	Ref("pessoa_id", "pessoas", record.Required()).
	Timestamp("data_atendimento", record.Required()).
	SortBy("data_atendimento", true).
	SearchOn("pessoa_id").
	MustBuild()

func visit(id, person string, day int) record.Record {
	return record.Record{ID: record.ID(id), Fields: record.Fields{
		"pessoa_id":        record.ID(person),
		"data_atendimento": time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC),
	}}
}

func TestLookupLabelsAndChoices(t *testing.T) {
	peopleStore := &fakeStore{rows: []record.Record{rec("1", "José"), rec("2", "Ana")}}
	visitStore := &fakeStore{rows: []record.Record{visit("10", "1", 1), visit("11", "2", 3), visit("12", "9", 2)}}
	c := New(visits, visitStore, WithLookup(people, peopleStore))
	drain(c, c.Init())

	if got := ids(c.Records()); !reflect.DeepEqual(got, []record.ID{"11", "12", "10"}) {
		t.Fatalf("records = %v, want newest first", got)
	}
	first := c.Records()[0]
	if got := c.Cell(first, "pessoa_id"); got != "Ana" {
		t.Fatalf("label = %q", got)
	}
	if got := c.Cell(c.Records()[1], "pessoa_id"); got != "" {
		t.Fatalf("unresolved reference should render blank, got %q", got)
	}
	choices := c.Choices("pessoa_id")
	want := []Choice{{ID: "2", Label: "Ana"}, {ID: "1", Label: "José"}}
	if !reflect.DeepEqual(choices, want) {
		t.Fatalf("choices = %+v", choices)
	}
}

func TestFilterOnReferenceUsesLabel(t *testing.T) {
	peopleStore := &fakeStore{rows: []record.Record{rec("1", "José"), rec("2", "Ana")}}
	visitStore := &fakeStore{rows: []record.Record{visit("10", "1", 1), visit("11", "2", 3)}}
	c := New(visits, visitStore, WithLookup(people, peopleStore))
	drain(c, c.Init())

	c.SetFilter("jose")
	if got := ids(c.Visible()); !reflect.DeepEqual(got, []record.ID{"10"}) {
		t.Fatalf("visible = %v", got)
	}
}

func TestLookupFailureWarns(t *testing.T) {
	peopleStore := &fakeStore{lists: []listResult{{err: errors.New("timeout")}}}
	notices := &Notices{}
	c := New(visits, &fakeStore{}, WithLookup(people, peopleStore), WithNotifier(notices))
	drain(c, c.Init())
	var warned bool
	for _, n := range notices.List {
		if n.Level == LevelWarning && errors.Is(n.Err, ErrFetch) {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected lookup warning, got %+v", notices.List)
	}
	if c.LookupLoading() {
		t.Fatalf("lookup should be resolved")
	}
}

func TestSetRef(t *testing.T) {
	c := New(visits, &fakeStore{})
	drain(c, c.Init())
	_ = c.BeginCreate()
	if err := c.SetRef("pessoa_id", "4"); err != nil {
		t.Fatalf("set ref: %v", err)
	}
	if c.Draft().Fields["pessoa_id"] != record.ID("4") {
		t.Fatalf("draft = %+v", c.Draft())
	}
	_ = c.SetRef("pessoa_id", "")
	if c.Draft().Fields["pessoa_id"] != nil {
		t.Fatalf("empty id must clear the reference")
	}
	if err := c.SetRef("data_atendimento", "4"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}
