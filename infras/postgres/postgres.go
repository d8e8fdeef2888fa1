package postgres

//nolint:revive
import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"salon/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxIdleTime = 5 * time.Minute
)

// Connection splits reads from writes; appointment inserts always go to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Replica is the address of one postgres endpoint.
type Replica struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
}

// DSN renders the replica as a lib/pq connection URL.
func (r Replica) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(r.Username, r.Password),
		Host:     net.JoinHostPort(r.Host, r.Port),
		Path:     "/" + r.Database,
		RawQuery: url.Values{"sslmode": {r.SSLMode}}.Encode(),
	}

	return dsn.String()
}

// Replicas returns the read and write endpoints with the database prefix applied.
func Replicas(cfg *config.Config) (read, write Replica) {
	pg := cfg.DB.Postgres

	read = Replica{
		Role: "read", Host: pg.Read.Host, Port: pg.Read.Port,
		Username: pg.Read.Username, Password: pg.Read.Password,
		Database: pg.Prefix + pg.Read.Name, SSLMode: pg.Read.SSLMode,
	}
	write = Replica{
		Role: "write", Host: pg.Write.Host, Port: pg.Write.Port,
		Username: pg.Write.Username, Password: pg.Write.Password,
		Database: pg.Prefix + pg.Write.Name, SSLMode: pg.Write.SSLMode,
	}

	return read, write
}

func New(cfg *config.Config) *Connection {
	read, write := Replicas(cfg)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	return &Connection{
		Read:  Connect(context.Background(), read, cfg.DB.Postgres.MaxRetry, wait),
		Write: Connect(context.Background(), write, cfg.DB.Postgres.MaxRetry, wait),
	}
}

// Connect dials the replica, retrying up to attempts times. Exhausting the
// attempts is fatal: the service cannot book without a database.
func Connect(ctx context.Context, replica Replica, attempts int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("role", replica.Role).
		Str("host", replica.Host).
		Str("database", replica.Database).
		Logger()

retry:
	for attempt := 1; attempt <= max(attempts, 1); attempt++ {
		db, err := sqlx.ConnectContext(ctx, "postgres", replica.DSN())
		if err == nil {
			db.SetMaxOpenConns(maxOpenConns)
			db.SetMaxIdleConns(maxIdleConns)
			db.SetConnMaxIdleTime(connMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("Database not reachable")

		select {
		case <-ctx.Done():
			break retry
		case <-time.After(wait):
		}
	}

	logger.Fatal().Int("attempts", attempts).Msg("Could not connect to database")

	return nil
}

// WithTx runs fn in a write transaction, committing only when fn succeeds.
func (c *Connection) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to roll back transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
