package list

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/safesistemas/cejoana/pkg/api"
	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/store/memory"
)

func seeded() *memory.Backend {
	b := memory.New()
	b.Seed(entities.People,
		record.Record{ID: "1", Fields: record.Fields{"nome": "João"}},
		record.Record{ID: "2", Fields: record.Fields{"nome": "Ana"}},
	)
	b.Seed(entities.Attendants, record.Record{ID: "1", Fields: record.Fields{"nome": "Bia"}})
	b.Seed(entities.AttendanceTypes, record.Record{ID: "1", Fields: record.Fields{"descricao_atendimento": "Escuta"}})
	b.Seed(entities.Attendances,
		record.Record{ID: "1", Fields: record.Fields{
			"pessoa_id": record.ID("1"), "atendente_id": record.ID("1"), "tipo_atendimento_id": record.ID("1"),
			"data_atendimento": time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		}},
		record.Record{ID: "2", Fields: record.Fields{
			"pessoa_id": record.ID("2"), "atendente_id": record.ID("1"), "tipo_atendimento_id": record.ID("1"),
			"data_atendimento": time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		}},
	)
	return b
}

func TestListFiltersOnReferenceLabels(t *testing.T) {
	var buf bytes.Buffer
	l := &List{Backend: seeded(), Schema: entities.Attendances, Filter: "joao", Out: &buf}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 attendance") || !strings.Contains(out, "João") || strings.Contains(out, "Ana") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Escuta") || !strings.Contains(out, "Bia") {
		t.Fatalf("references should print their labels:\n%s", out)
	}
}

func TestListJSON(t *testing.T) {
	var buf bytes.Buffer
	l := &List{Backend: seeded(), Schema: entities.People, JSON: true, Out: &buf}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	var resp api.ListResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(resp.Records) != 2 || resp.Records[0].ID != "2" {
		t.Fatalf("rows should come sorted by name: %+v", resp.Records)
	}
}

func TestListReportsFetchFailure(t *testing.T) {
	b := memory.New()
	_ = b.Close()
	l := &List{Backend: b, Schema: entities.Cities, Out: &bytes.Buffer{}}
	err := l.Do(context.Background())
	if !errors.Is(err, controller.ErrFetch) || !errors.Is(err, store.ErrClosed) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}
