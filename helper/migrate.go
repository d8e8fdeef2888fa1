package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"salon/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type migration struct {
	run  func(*migrate.Migrate) error
	done string
}

var migrations = map[string]migration{
	"up":      {run: (*migrate.Migrate).Up, done: "Schema is up to date"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Applied one migration"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Reverted one migration"},
	"drop":    {run: (*migrate.Migrate).Down, done: "Reverted every migration"},
	"version": {run: logVersion},
}

// MigrationDSN builds the golang-migrate postgres URL from the write replica settings.
func MigrationDSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres
	query := url.Values{}
	query.Set("sslmode", pg.Write.SSLMode)

	if pg.MigrationTable != "" {
		query.Set("x-migrations-table", pg.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Write.Username, pg.Write.Password),
		Host:     net.JoinHostPort(pg.Write.Host, pg.Write.Port),
		Path:     "/" + pg.Prefix + pg.Write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("No migration applied yet")

		return nil
	}

	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")

	return nil
}

// Runner executes one of up, step-up, down, drop or version against the write database.
func Runner(cfg *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := migrate.New(migrationSource, MigrationDSN(cfg))
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("Failed to close migrator")
		}
	}()

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", action, err)
	}

	if step.done != "" {
		log.Info().Str("action", action).Msg(step.done)
	}

	return nil
}

func Up(cfg *config.Config) error { return Runner(cfg, "up") }

func StepUp(cfg *config.Config) error { return Runner(cfg, "step-up") }

func Down(cfg *config.Config) error { return Runner(cfg, "down") }

func Drop(cfg *config.Config) error { return Runner(cfg, "drop") }

func Version(cfg *config.Config) error { return Runner(cfg, "version") }
