package sqlstore

import (
	"strconv"
	"strings"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	// Name is the configuration name of the dialect.
	Name string
	// Driver is the database/sql driver name.
	Driver string

	numbered bool
	serialPK string
	uuidPK   string
	types    map[record.Kind]string
}

var (
	// Postgres talks to PostgreSQL through pgx's database/sql driver.
	Postgres = Dialect{
		Name:     "postgres",
		Driver:   "pgx",
		numbered: true,
		serialPK: "BIGSERIAL PRIMARY KEY",
		uuidPK:   "UUID PRIMARY KEY DEFAULT gen_random_uuid()",
		types: map[record.Kind]string{
			record.KindText:      "TEXT",
			record.KindNumber:    "DOUBLE PRECISION",
			record.KindBool:      "BOOLEAN NOT NULL DEFAULT FALSE",
			record.KindTimestamp: "TIMESTAMPTZ",
		},
	}

	// SQLite uses the pure Go modernc.org/sqlite driver.
	SQLite = Dialect{
		Name:     "sqlite",
		Driver:   "sqlite",
		serialPK: "INTEGER PRIMARY KEY AUTOINCREMENT",
		uuidPK:   "TEXT PRIMARY KEY",
		types: map[record.Kind]string{
			record.KindText:      "TEXT",
			record.KindNumber:    "REAL",
			record.KindBool:      "BOOLEAN NOT NULL DEFAULT 0",
			record.KindTimestamp: "TIMESTAMP",
		},
	}
)

// DialectFor returns the dialect with the given configuration name.
func DialectFor(name string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, true
	case "sqlite", "sqlite3":
		return SQLite, true
	}
	return Dialect{}, false
}

// placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) columnType(f record.Field) string {
	if f.Kind == record.KindRef {
		if f.RefID == record.IDUUID {
			if d.numbered {
				return "UUID"
			}
			return "TEXT"
		}
		if d.numbered {
			return "BIGINT"
		}
		return "INTEGER"
	}
	t := d.types[f.Kind]
	if f.Required && f.Kind != record.KindBool {
		t += " NOT NULL"
	}
	return t
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// CreateTable renders the DDL for s.
func (d Dialect) CreateTable(s *record.Schema) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quote(s.Name))
	b.WriteString(" (\n\t")
	b.WriteString(quote("id"))
	b.WriteString(" ")
	if s.IDKind == record.IDUUID {
		b.WriteString(d.uuidPK)
	} else {
		b.WriteString(d.serialPK)
	}
	for _, f := range s.Fields {
		b.WriteString(",\n\t")
		b.WriteString(quote(f.Name))
		b.WriteString(" ")
		b.WriteString(d.columnType(f))
	}
	b.WriteString("\n)")
	return b.String()
}

func (d Dialect) selectAll(s *record.Schema) string {
	cols := make([]string, 0, len(s.Fields)+1)
	cols = append(cols, quote("id"))
	for _, f := range s.Fields {
		cols = append(cols, quote(f.Name))
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + quote(s.Name) + " ORDER BY " + quote("id")
}

func (d Dialect) insert(s *record.Schema, cols []string) string {
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
		marks[i] = d.placeholder(i + 1)
	}
	return "INSERT INTO " + quote(s.Name) + " (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

func (d Dialect) update(s *record.Schema, cols []string) string {
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = quote(c) + " = " + d.placeholder(i+1)
	}
	return "UPDATE " + quote(s.Name) + " SET " + strings.Join(sets, ", ") + " WHERE " + quote("id") + " = " + d.placeholder(len(cols)+1)
}

func (d Dialect) deleteIn(s *record.Schema, n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = d.placeholder(i + 1)
	}
	return "DELETE FROM " + quote(s.Name) + " WHERE " + quote("id") + " IN (" + strings.Join(marks, ", ") + ")"
}
