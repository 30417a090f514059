// Package entities declares the record schemas of every console screen.
package entities

import (
	"sort"
	"strings"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Table names in the backing store.
const (
	PeopleTable          = "pessoas"
	AttendantsTable      = "atendentes"
	AttendancesTable     = "atendimentos"
	AttendanceTypesTable = "tipo_atendimento"
	CitiesTable          = "cidades"
	UsersTable           = "profiles"
)

var (
	// Cities lists the municipalities people live in.
	Cities = record.NewSchema(CitiesTable).
		Title("Cities").
		Noun("city", "cities").
		Text("nome", record.Label("City"), record.Required()).
		Text("uf", record.Label("State"), record.Required(), record.Uppercase(), record.MaxLength(2)).
		SortBy("nome", false).
		SearchOn("nome").
		LabelWith("nome").
		MustBuild()

	// People are the persons receiving attendance.
	People = record.NewSchema(PeopleTable).
		Title("People").
		Noun("person", "people").
		Text("nome", record.Label("Name"), record.Required()).
		Text("telefone", record.Label("Phone")).
		Number("idade", record.Label("Age")).
		Text("sexo", record.Label("Sex"), record.Options("M", "F"), record.Uppercase()).
		Text("endereco", record.Label("Address")).
		Text("bairro", record.Label("District")).
		Ref("cidade_id", CitiesTable, record.Label("City")).
		SortBy("nome", false).
		SearchOn("nome").
		LabelWith("nome").
		MustBuild()

	// Attendants are the volunteers who attend people.
	Attendants = record.NewSchema(AttendantsTable).
		Title("Attendants").
		Noun("attendant", "attendants").
		Text("nome", record.Label("Name"), record.Required()).
		Text("telefone", record.Label("Phone")).
		SortBy("nome", false).
		SearchOn("nome").
		LabelWith("nome").
		MustBuild()

	// AttendanceTypes is the lookup of attendance kinds.
	AttendanceTypes = record.NewSchema(AttendanceTypesTable).
		Title("Attendance types").
		Noun("attendance type", "attendance types").
		Text("descricao_atendimento", record.Label("Description"), record.Required()).
		SortBy("descricao_atendimento", false).
		SearchOn("descricao_atendimento").
		LabelWith("descricao_atendimento").
		MustBuild()

	// Attendances are the attendance events, newest first.
	Attendances = record.NewSchema(AttendancesTable).
		Title("Attendances").
		Noun("attendance", "attendances").
		Ref("pessoa_id", PeopleTable, record.Label("Person"), record.Required()).
		Ref("atendente_id", AttendantsTable, record.Label("Attendant"), record.Required()).
		Timestamp("data_atendimento", record.Label("Date"), record.Required()).
		Ref("tipo_atendimento_id", AttendanceTypesTable, record.Label("Type"), record.Required()).
		Text("orientacao", record.Label("Guidance"), record.Multiline()).
		Text("observacao", record.Label("Notes"), record.Multiline()).
		SortBy("data_atendimento", true).
		SearchOn("pessoa_id").
		MustBuild()

	// Users are the login profiles. Accounts are created by sign-up, so the
	// screen only edits them.
	Users = record.NewSchema(UsersTable).
		Title("Users").
		Noun("user", "users").
		IDs(record.IDUUID).
		Text("username", record.Label("Username")).
		Bool("ativo", record.Label("Active")).
		SortBy("username", false).
		SearchOn("username").
		LabelWith("username").
		Operations(record.Operations{Edit: true}).
		MustBuild()
)

// All returns every schema in menu order.
func All() []*record.Schema {
	return []*record.Schema{People, Attendants, Attendances, AttendanceTypes, Cities, Users}
}

var aliases = map[string]string{
	"people":           PeopleTable,
	"person":           PeopleTable,
	"attendants":       AttendantsTable,
	"attendant":        AttendantsTable,
	"attendances":      AttendancesTable,
	"attendance":       AttendancesTable,
	"types":            AttendanceTypesTable,
	"attendance-types": AttendanceTypesTable,
	"cities":           CitiesTable,
	"city":             CitiesTable,
	"users":            UsersTable,
	"user":             UsersTable,
}

// Lookup finds a schema by table name or English alias.
func Lookup(name string) (*record.Schema, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if table, ok := aliases[key]; ok {
		key = table
	}
	for _, s := range All() {
		if s.Name == key {
			return s, true
		}
	}
	return nil, false
}

// Names returns the accepted names for Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(aliases)+len(All()))
	for alias := range aliases {
		names = append(names, alias)
	}
	for _, s := range All() {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Referenced returns the schemas that s's reference fields point to, once
// each, in field order.
func Referenced(s *record.Schema) []*record.Schema {
	var out []*record.Schema
	seen := map[string]bool{}
	for _, f := range s.Refs() {
		if seen[f.Ref] {
			continue
		}
		seen[f.Ref] = true
		if ref, ok := Lookup(f.Ref); ok {
			out = append(out, ref)
		}
	}
	return out
}
