package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"UNIT_ABILITIES_SLK", "UNIT_STRINGS", "ABILITY_STRINGS", "REPORT_PATH", "XLSX_PATH",
		"DATABASE_URL", "NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "EXPORT_BATCH_SIZE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, DefaultUnitAbilitiesPath, cfg.UnitAbilitiesPath)
	assert.Equal(t, DefaultUnitStringsPath, cfg.UnitStringsPath)
	assert.Equal(t, DefaultAbilityStringsPath, cfg.AbilityStringsPath)
	assert.Equal(t, DefaultReportPath, cfg.ReportPath)
	assert.Equal(t, DefaultXLSXPath, cfg.XLSXPath)
	assert.Equal(t, "neo4j", cfg.Neo4jUser)
	assert.Equal(t, 100, cfg.ExportBatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.PostgresEnabled())
	assert.False(t, cfg.Neo4jEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("UNIT_ABILITIES_SLK", "/data/UnitAbilities.slk")
	t.Setenv("REPORT_PATH", "/out/list.txt")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/heroes")
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("EXPORT_BATCH_SIZE", "25")

	cfg := Load()

	assert.Equal(t, "/data/UnitAbilities.slk", cfg.UnitAbilitiesPath)
	assert.Equal(t, "/out/list.txt", cfg.ReportPath)
	assert.Equal(t, 25, cfg.ExportBatchSize)
	assert.True(t, cfg.PostgresEnabled())
	assert.True(t, cfg.Neo4jEnabled())
}

func TestGetEnvIntFallback(t *testing.T) {
	for _, v := range []string{"abc", "0", "-3"} {
		t.Setenv("EXPORT_BATCH_SIZE", v)
		assert.Equal(t, 7, getEnvInt("EXPORT_BATCH_SIZE", 7), v)
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
