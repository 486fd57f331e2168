// Package store persists resolved hero skill lists in PostgreSQL.
package store

import (
	"context"
	"fmt"
	"strings"

	"hero-skill-lister/internal/report"
	"hero-skill-lister/internal/textutil"
	"hero-skill-lister/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Execer is the subset of *pgxpool.Pool the store needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS heroes (
		run_id    UUID NOT NULL,
		seq       INTEGER NOT NULL,
		unit_id   TEXT NOT NULL,
		name      TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS hero_skills (
		run_id       UUID NOT NULL,
		seq          INTEGER NOT NULL,
		position     INTEGER NOT NULL,
		unit_id      TEXT NOT NULL,
		ability_id   TEXT NOT NULL,
		skill        TEXT NOT NULL,
		tooltip      TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		PRIMARY KEY (run_id, seq, position)
	)`,
	`CREATE INDEX IF NOT EXISTS hero_skills_ability_idx ON hero_skills (ability_id)`,
}

type heroRow struct {
	seq    int
	unitID string
	name   string
}

type skillRow struct {
	seq       int
	position  int
	unitID    string
	abilityID string
	skill     string
	tooltip   string
}

// HeroStore writes one export run of hero skills. Every run gets its own
// run ID so earlier exports are kept.
type HeroStore struct {
	db        Execer
	runID     uuid.UUID
	batchSize int
}

func NewHeroStore(db Execer, runID uuid.UUID, batchSize int) *HeroStore {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &HeroStore{db: db, runID: runID, batchSize: batchSize}
}

func (s *HeroStore) Name() string { return "postgres" }

// RunID identifies the rows written by this store.
func (s *HeroStore) RunID() uuid.UUID { return s.runID }

// EnsureSchema creates the tables if they do not exist.
func (s *HeroStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Export creates the schema and inserts all entries.
func (s *HeroStore) Export(ctx context.Context, entries []report.Entry) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	var (
		heroes []heroRow
		skills []skillRow
	)
	for i, e := range entries {
		heroes = append(heroes, heroRow{seq: i, unitID: e.UnitID, name: e.Name})
		for pos, sk := range e.Skills {
			skills = append(skills, skillRow{
				seq:       i,
				position:  pos,
				unitID:    e.UnitID,
				abilityID: sk.AbilityID,
				skill:     sk.Name,
				tooltip:   sk.Tooltip,
			})
		}
	}

	for _, batch := range worker.Batch(heroes, s.batchSize) {
		sql, args := s.heroInsert(batch)
		if _, err := s.db.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert heroes: %w", err)
		}
	}
	for _, batch := range worker.Batch(skills, s.batchSize) {
		sql, args := s.skillInsert(batch)
		if _, err := s.db.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert hero skills: %w", err)
		}
	}

	log.Info().
		Str("run_id", s.runID.String()).
		Int("heroes", len(heroes)).
		Int("skills", len(skills)).
		Msg("Exported hero skills to PostgreSQL")
	return nil
}

func (s *HeroStore) heroInsert(rows []heroRow) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO heroes (run_id, seq, unit_id, name) VALUES ")
	args := make([]any, 0, len(rows)*4)
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholders(len(args), 4))
		args = append(args, s.runID, r.seq, r.unitID, r.name)
	}
	sb.WriteString(" ON CONFLICT (run_id, seq) DO UPDATE SET unit_id = EXCLUDED.unit_id, name = EXCLUDED.name")
	return sb.String(), args
}

func (s *HeroStore) skillInsert(rows []skillRow) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO hero_skills (run_id, seq, position, unit_id, ability_id, skill, tooltip, content_hash) VALUES ")
	args := make([]any, 0, len(rows)*8)
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholders(len(args), 8))
		args = append(args, s.runID, r.seq, r.position, r.unitID, r.abilityID, r.skill, r.tooltip,
			textutil.Hash(r.abilityID, r.skill, r.tooltip))
	}
	sb.WriteString(" ON CONFLICT (run_id, seq, position) DO UPDATE SET" +
		" ability_id = EXCLUDED.ability_id, skill = EXCLUDED.skill," +
		" tooltip = EXCLUDED.tooltip, content_hash = EXCLUDED.content_hash")
	return sb.String(), args
}

// placeholders renders "($n+1, ..., $n+count)".
func placeholders(offset, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", offset+i+1)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
