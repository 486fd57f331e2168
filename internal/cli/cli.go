package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"hero-skill-lister/internal/config"
	"hero-skill-lister/internal/export"
	"hero-skill-lister/internal/graph"
	"hero-skill-lister/internal/parser"
	"hero-skill-lister/internal/report"
	"hero-skill-lister/internal/store"
	"hero-skill-lister/internal/xlsx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hero-skill-lister",
		Short: "List Warcraft III heroes with their skills and tooltips",
		Long: `Reads UnitAbilities.slk together with CampaignUnitStrings.txt and
CampaignAbilityStrings.txt and writes hero_skill_list.txt, one [hero] section
per unit followed by "skill = tooltip" lines.

Input and output paths come from the environment (or a .env file):
UNIT_ABILITIES_SLK, UNIT_STRINGS, ABILITY_STRINGS, REPORT_PATH.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(loadConfig())
		},
	}

	rootCmd.AddCommand(dumpCmd())
	rootCmd.AddCommand(exportCmd())

	return rootCmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the unit/ability records parsed from the SLK file as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(loadConfig(), cmd.OutOrStdout())
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the hero skill list to XLSX, and to PostgreSQL/Neo4j when configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(loadConfig())
		},
	}
}

func loadConfig() *config.Config {
	cfg := config.Load()
	setLogLevel(cfg.LogLevel)
	return cfg
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// buildEntries parses the SLK export and resolves it against both string
// tables. Any unreadable input aborts before anything is written.
func buildEntries(cfg *config.Config) ([]report.Entry, error) {
	records, err := parser.ParseFile(cfg.UnitAbilitiesPath)
	if err != nil {
		return nil, fmt.Errorf("parse unit abilities: %w", err)
	}
	log.Info().Str("path", cfg.UnitAbilitiesPath).Int("records", len(records)).Msg("Parsed unit abilities")

	units, err := parser.LoadTable(cfg.UnitStringsPath)
	if err != nil {
		return nil, fmt.Errorf("load unit strings: %w", err)
	}

	abilities, err := parser.LoadTable(cfg.AbilityStringsPath)
	if err != nil {
		return nil, fmt.Errorf("load ability strings: %w", err)
	}

	return report.Build(records, units, abilities), nil
}

// runReport handles the root command.
func runReport(cfg *config.Config) error {
	entries, err := buildEntries(cfg)
	if err != nil {
		return err
	}
	return report.WriteFile(cfg.ReportPath, entries)
}

// runDump handles the `dump` command.
func runDump(cfg *config.Config, out io.Writer) error {
	records, err := parser.ParseFile(cfg.UnitAbilitiesPath)
	if err != nil {
		return fmt.Errorf("parse unit abilities: %w", err)
	}
	return report.WriteYAML(out, records)
}

// runExport handles the `export` command.
func runExport(cfg *config.Config) error {
	ctx, cancel := setupContext()
	defer cancel()

	entries, err := buildEntries(cfg)
	if err != nil {
		return err
	}

	sinks := []export.Sink{xlsx.NewWriter(cfg.XLSXPath)}

	if cfg.PostgresEnabled() {
		pgPool, err := connectPostgres(ctx, cfg)
		if err != nil {
			return err
		}
		defer pgPool.Close()

		runID := uuid.New()
		log.Info().Str("run_id", runID.String()).Msg("PostgreSQL export enabled")
		sinks = append(sinks, store.NewHeroStore(pgPool, runID, cfg.ExportBatchSize))
	}

	if cfg.Neo4jEnabled() {
		driver, err := connectNeo4j(ctx, cfg)
		if err != nil {
			return err
		}
		defer driver.Close(ctx)

		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)

		sinks = append(sinks, graph.NewGraphBuilder(graph.SessionRunner{Session: session}, cfg.ExportBatchSize))
	}

	return export.Run(ctx, sinks, entries)
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pgPool, nil
}

func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}
