package sqlstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

func openSQLite(t *testing.T) *Backend {
	t.Helper()
	ctx := context.Background()
	b, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "db", "cejoana.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.Migrate(ctx, entities.All()...))
	return b
}

func TestMigrateIsIdempotent(t *testing.T) {
	b := openSQLite(t)
	require.NoError(t, b.Migrate(context.Background(), entities.All()...))
}

func TestSQLiteCRUD(t *testing.T) {
	ctx := context.Background()
	b := openSQLite(t)
	people := b.Adapter(entities.People)

	require.NoError(t, people.Insert(ctx, record.Fields{"nome": "Ana", "idade": 30.0, "cidade_id": record.ID("7")}))
	require.NoError(t, people.Insert(ctx, record.Fields{"nome": "Bia"}))

	rows, err := people.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, record.ID("1"), rows[0].ID)
	assert.Equal(t, "Ana", rows[0].Fields["nome"])
	assert.Equal(t, 30.0, rows[0].Fields["idade"])
	assert.Equal(t, record.ID("7"), rows[0].Fields["cidade_id"])
	assert.Nil(t, rows[1].Fields["idade"])
	assert.Nil(t, rows[1].Fields["cidade_id"])
	assert.Equal(t, "", rows[1].Fields["telefone"])

	require.NoError(t, people.Update(ctx, rows[1].ID, record.Fields{"idade": 41.0, "cidade_id": nil}))
	rows, err = people.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 41.0, rows[1].Fields["idade"])

	require.NoError(t, people.DeleteMany(ctx, []record.ID{"1", "2"}))
	rows, err = people.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteUpdateMissingRow(t *testing.T) {
	b := openSQLite(t)
	err := b.Adapter(entities.Cities).Update(context.Background(), "99", record.Fields{"nome": "X"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteUUIDTable(t *testing.T) {
	ctx := context.Background()
	b := openSQLite(t)
	users := b.Adapter(entities.Users)

	require.NoError(t, users.Insert(ctx, record.Fields{"username": "maria", "ativo": true}))
	rows, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, err = uuid.Parse(string(rows[0].ID))
	require.NoError(t, err)
	assert.Equal(t, true, rows[0].Fields["ativo"])

	require.NoError(t, users.Update(ctx, rows[0].ID, record.Fields{"ativo": false}))
	rows, err = users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, false, rows[0].Fields["ativo"])
}

func TestSQLiteTimestampRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := openSQLite(t)
	att := b.Adapter(entities.Attendances)
	when := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

	require.NoError(t, att.Insert(ctx, record.Fields{
		"pessoa_id":           record.ID("1"),
		"atendente_id":        record.ID("2"),
		"tipo_atendimento_id": record.ID("3"),
		"data_atendimento":    when,
		"orientacao":          "rest",
	}))
	rows, err := att.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got, ok := rows[0].Fields["data_atendimento"].(time.Time)
	require.True(t, ok, "timestamp came back as %T", rows[0].Fields["data_atendimento"])
	assert.True(t, got.Equal(when), "got %v want %v", got, when)
}

func TestSQLiteRejectsNonNumericSerialID(t *testing.T) {
	b := openSQLite(t)
	err := b.Adapter(entities.Cities).DeleteMany(context.Background(), []record.ID{"abc"})
	assert.Error(t, err)
}

func TestPostgresStatements(t *testing.T) {
	s := entities.Cities
	assert.Equal(t, `UPDATE "cidades" SET "nome" = $1, "uf" = $2 WHERE "id" = $3`, Postgres.update(s, []string{"nome", "uf"}))
	assert.Equal(t, `DELETE FROM "cidades" WHERE "id" IN ($1, $2, $3)`, Postgres.deleteIn(s, 3))
	assert.Equal(t, `INSERT INTO "cidades" ("nome") VALUES (?)`, SQLite.insert(s, []string{"nome"}))

	ddl := Postgres.CreateTable(entities.Users)
	assert.True(t, strings.Contains(ddl, `"id" UUID PRIMARY KEY`), ddl)
	assert.True(t, strings.Contains(ddl, `"ativo" BOOLEAN`), ddl)

	ddl = Postgres.CreateTable(entities.Attendances)
	assert.True(t, strings.Contains(ddl, `"pessoa_id" BIGINT`), ddl)
	assert.True(t, strings.Contains(ddl, `"data_atendimento" TIMESTAMPTZ NOT NULL`), ddl)
}

func TestDialectFor(t *testing.T) {
	d, ok := DialectFor("PostgreSQL")
	require.True(t, ok)
	assert.Equal(t, "pgx", d.Driver)
	_, ok = DialectFor("oracle")
	assert.False(t, ok)
}
