package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hero-skill-lister/internal/report"
	"hero-skill-lister/internal/textutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls  []execCall
	failOn string
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("connection reset")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

var testEntries = []report.Entry{
	{
		UnitID: "Hpal",
		Name:   "Paladin",
		Skills: []report.Skill{
			{AbilityID: "AHhb", Name: "Holy Light", Tooltip: "Heals."},
			{AbilityID: "AHds", Name: "Divine Shield"},
			{AbilityID: "AHad", Name: "Devotion Aura"},
		},
	},
	{UnitID: "Obla", Name: "Blademaster"},
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "($1, $2, $3)", placeholders(0, 3))
	assert.Equal(t, "($5, $6)", placeholders(4, 2))
}

func TestHeroStoreExport(t *testing.T) {
	db := &fakeDB{}
	runID := uuid.New()
	s := NewHeroStore(db, runID, 2)

	require.NoError(t, s.Export(context.Background(), testEntries))

	// schema + 1 hero batch + 2 skill batches
	require.Len(t, db.calls, len(schema)+3)
	for i := range schema {
		assert.Contains(t, db.calls[i].sql, "CREATE")
	}

	heroes := db.calls[len(schema)]
	assert.True(t, strings.HasPrefix(heroes.sql, "INSERT INTO heroes"))
	assert.Contains(t, heroes.sql, "($1, $2, $3, $4), ($5, $6, $7, $8)")
	assert.Equal(t, []any{runID, 0, "Hpal", "Paladin", runID, 1, "Obla", "Blademaster"}, heroes.args)

	first := db.calls[len(schema)+1]
	assert.True(t, strings.HasPrefix(first.sql, "INSERT INTO hero_skills"))
	require.Len(t, first.args, 16)
	assert.Equal(t, []any{runID, 0, 0, "Hpal", "AHhb", "Holy Light", "Heals.", textutil.Hash("AHhb", "Holy Light", "Heals.")}, first.args[:8])

	second := db.calls[len(schema)+2]
	require.Len(t, second.args, 8)
	assert.Equal(t, "AHad", second.args[4])
	assert.Equal(t, 2, second.args[2])
}

func TestHeroStoreExportEmpty(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, NewHeroStore(db, uuid.New(), 0).Export(context.Background(), nil))
	assert.Len(t, db.calls, len(schema))
}

func TestHeroStoreExportErrors(t *testing.T) {
	tests := []struct {
		failOn string
		want   string
	}{
		{"CREATE TABLE IF NOT EXISTS heroes", "ensure schema"},
		{"INSERT INTO heroes", "insert heroes"},
		{"INSERT INTO hero_skills", "insert hero skills"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			db := &fakeDB{failOn: tt.failOn}
			err := NewHeroStore(db, uuid.New(), 10).Export(context.Background(), testEntries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHeroStoreName(t *testing.T) {
	runID := uuid.New()
	s := NewHeroStore(&fakeDB{}, runID, 10)
	assert.Equal(t, "postgres", s.Name())
	assert.Equal(t, runID, s.RunID())
}
