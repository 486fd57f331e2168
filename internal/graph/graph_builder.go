// Package graph mirrors the hero skill list into Neo4j as
// (:Hero)-[:HAS_SKILL]->(:Ability).
package graph

import (
	"context"
	"fmt"

	"hero-skill-lister/internal/report"
	"hero-skill-lister/internal/worker"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Runner executes a single Cypher statement to completion.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) error
}

// SessionRunner adapts a driver session to Runner.
type SessionRunner struct {
	Session neo4j.SessionWithContext
}

func (r SessionRunner) Run(ctx context.Context, cypher string, params map[string]any) error {
	res, err := r.Session.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

const (
	upsertHeroes = `
		UNWIND $rows AS row
		MERGE (h:Hero {id: row.unit_id})
		SET h.name = row.name`

	upsertSkills = `
		UNWIND $rows AS row
		MATCH (h:Hero {id: row.unit_id})
		MERGE (a:Ability {id: row.ability_id})
		SET a.name = row.skill, a.tooltip = row.tooltip
		MERGE (h)-[r:HAS_SKILL]->(a)
		SET r.position = row.position`
)

var constraints = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (h:Hero) REQUIRE h.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Ability) REQUIRE a.id IS UNIQUE",
}

// GraphBuilder upserts hero and ability nodes.
type GraphBuilder struct {
	runner    Runner
	batchSize int
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(r Runner, batchSize int) *GraphBuilder {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &GraphBuilder{runner: r, batchSize: batchSize}
}

func (gb *GraphBuilder) Name() string { return "neo4j" }

// EnsureSchema creates uniqueness constraints on hero and ability IDs.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	for _, c := range constraints {
		if err := gb.runner.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}
	log.Info().Msg("Graph schema ensured")
	return nil
}

// Export merges every hero, then every skill edge, in batches.
func (gb *GraphBuilder) Export(ctx context.Context, entries []report.Entry) error {
	if err := gb.EnsureSchema(ctx); err != nil {
		return err
	}

	var heroes, skills []map[string]any
	for _, e := range entries {
		heroes = append(heroes, map[string]any{"unit_id": e.UnitID, "name": e.Name})
		for pos, s := range e.Skills {
			skills = append(skills, map[string]any{
				"unit_id":    e.UnitID,
				"ability_id": s.AbilityID,
				"skill":      s.Name,
				"tooltip":    s.Tooltip,
				"position":   pos,
			})
		}
	}

	for _, batch := range worker.Batch(heroes, gb.batchSize) {
		if err := gb.runner.Run(ctx, upsertHeroes, map[string]any{"rows": batch}); err != nil {
			return fmt.Errorf("upsert heroes: %w", err)
		}
	}
	for _, batch := range worker.Batch(skills, gb.batchSize) {
		if err := gb.runner.Run(ctx, upsertSkills, map[string]any{"rows": batch}); err != nil {
			return fmt.Errorf("upsert skills: %w", err)
		}
	}

	log.Info().Int("heroes", len(heroes)).Int("skills", len(skills)).Msg("Exported hero skills to Neo4j")
	return nil
}
