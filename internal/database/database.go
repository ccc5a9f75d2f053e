// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool (pgxpool)
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
//   - exposing the pool to GORM through database/sql
//   - handing out per-request sessions pinned to one connection
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/frontdesk/internal/config"
	loggerConfig "github.com/deppfellow/frontdesk/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the pgx pool and the GORM handle built on top of it.
//
// Pool is nil when the Database was built from an existing GORM handle
// (tests on SQLite).
type Database struct {
	Pool  *pgxpool.Pool
	ORM   *gorm.DB
	sqlDB *sql.DB
	log   *zerolog.Logger
}

// multiTracer fans pgx tracer callbacks out to several tracers, since
// ConnConfig only has one Tracer slot (New Relic + local SQL logging).
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// DSN builds the postgres URL for cfg. The password is URL-escaped.
func DSN(cfg *config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	encodedPassword := url.QueryEscape(cfg.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		encodedPassword,
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// New creates a PostgreSQL connection pool with instrumentation and opens
// GORM on top of it.
//
//   - New Relic tracer when the agent is running
//   - SQL tracelog in the local env (chained with New Relic if both exist)
//   - GORM logs routed to the application logger
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService != nil && loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// Query logging is noisy, local only.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// database/sql view of the same pool; idle connections stay managed by pgxpool.
	sqlDB := stdlib.OpenDBFromPool(pool)

	orm, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig(logger, cfg.Observability))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return &Database{
		Pool:  pool,
		ORM:   orm,
		sqlDB: sqlDB,
		log:   logger,
	}, nil
}

// NewFromGorm wraps an already opened GORM handle.
func NewFromGorm(orm *gorm.DB, logger *zerolog.Logger) (*Database, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db from gorm: %w", err)
	}

	return &Database{
		ORM:   orm,
		sqlDB: sqlDB,
		log:   logger,
	}, nil
}

// GormConfig returns the GORM settings shared by every driver: UTC
// timestamps and warnings, errors and slow queries logged through zerolog.
func GormConfig(logger *zerolog.Logger, obs *config.ObservabilityConfig) *gorm.Config {
	slowThreshold := 200 * time.Millisecond
	if obs != nil && obs.Logging.SlowQueryThreshold > 0 {
		slowThreshold = obs.Logging.SlowQueryThreshold
	}

	return &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: logger.With().Str("component", "gorm").Logger()}, gormlogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// gormWriter adapts zerolog to the gorm logger.Writer interface. GORM only
// writes at Warn or above with the config above.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}

// Session is a GORM handle pinned to one pooled connection. Release must be
// called exactly once when the request is done.
type Session struct {
	DB   *gorm.DB
	conn *sql.Conn
}

// Acquire checks a dedicated connection out of the pool and binds a fresh
// GORM session to it. Queries made through the session carry ctx.
func (db *Database) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.sqlDB.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquire database connection")
	}

	tx := db.ORM.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = conn

	return &Session{DB: tx, conn: conn}, nil
}

// Release returns the connection to the pool.
func (s *Session) Release() error {
	return s.conn.Close()
}

// Ping verifies the database is reachable.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.sqlDB.PingContext(ctx)
}

// Close closes the database/sql handle and the pgx pool under it.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	err := db.sqlDB.Close()
	if db.Pool != nil {
		db.Pool.Close()
	}
	return err
}
