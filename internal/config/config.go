package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Default input and output locations, relative to the working directory.
const (
	DefaultUnitAbilitiesPath  = "test_data/UnitAbilities.slk"
	DefaultUnitStringsPath    = "test_data/CampaignUnitStrings.txt"
	DefaultAbilityStringsPath = "test_data/CampaignAbilityStrings.txt"
	DefaultReportPath         = "hero_skill_list.txt"
	DefaultXLSXPath           = "hero_skill_list.xlsx"
)

type Config struct {
	UnitAbilitiesPath  string
	UnitStringsPath    string
	AbilityStringsPath string
	ReportPath         string
	XLSXPath           string
	DatabaseURL        string
	Neo4jURI           string
	Neo4jUser          string
	Neo4jPassword      string
	ExportBatchSize    int
	LogLevel           string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		UnitAbilitiesPath:  getEnv("UNIT_ABILITIES_SLK", DefaultUnitAbilitiesPath),
		UnitStringsPath:    getEnv("UNIT_STRINGS", DefaultUnitStringsPath),
		AbilityStringsPath: getEnv("ABILITY_STRINGS", DefaultAbilityStringsPath),
		ReportPath:         getEnv("REPORT_PATH", DefaultReportPath),
		XLSXPath:           getEnv("XLSX_PATH", DefaultXLSXPath),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Neo4jURI:           getEnv("NEO4J_URI", ""),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", ""),
		ExportBatchSize:    getEnvInt("EXPORT_BATCH_SIZE", 100),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// PostgresEnabled reports whether a database export target is configured.
func (c *Config) PostgresEnabled() bool { return c.DatabaseURL != "" }

// Neo4jEnabled reports whether a graph export target is configured.
func (c *Config) Neo4jEnabled() bool { return c.Neo4jURI != "" }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
