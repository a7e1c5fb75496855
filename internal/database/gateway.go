package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/siscec-api/internal/config"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

// ErrUnavailable is wrapped by every Acquire failure: network, auth or a
// database that is not accepting connections.
var ErrUnavailable = errors.New("database unavailable")

// Session is a connection handle for exactly one unit of work. Callers must
// Close it when done.
type Session interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	Rebind(query string) string
	Close() error
}

// Gateway hands out sessions. A failed Acquire returns a nil Session and an
// error wrapping ErrUnavailable; it never panics and never retries.
type Gateway interface {
	Acquire(ctx context.Context) (Session, error)
	Close() error
}

// Observer receives the outcome of every Acquire.
type Observer interface {
	ObserveAcquire(err error, elapsed time.Duration)
}

type session struct {
	sqlx.QueryerContext
	sqlx.ExecerContext
	bindType int
	closer   func() error
}

func (s *session) Rebind(query string) string {
	return sqlx.Rebind(s.bindType, query)
}

func (s *session) Close() error {
	return s.closer()
}

// New builds the gateway selected by cfg.Pooled.
func New(cfg config.DatabaseConfig, log *logger.Logger, obs Observer) (Gateway, error) {
	if !cfg.Pooled {
		return NewDirectGateway(cfg.Driver, cfg.DSN(), log, obs), nil
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return NewPoolGateway(db, log, obs), nil
}

// DirectGateway opens a brand new connection on every Acquire.
type DirectGateway struct {
	driver string
	dsn    string
	log    *logger.Logger
	obs    Observer
}

func NewDirectGateway(driver, dsn string, log *logger.Logger, obs Observer) *DirectGateway {
	return &DirectGateway{
		driver: driver,
		dsn:    dsn,
		log:    log.With("gateway"),
		obs:    obs,
	}
}

func (g *DirectGateway) Acquire(ctx context.Context) (Session, error) {
	start := time.Now()
	g.log.Debug("connecting to database", "driver", g.driver, "mode", "direct")

	db, err := sqlx.ConnectContext(ctx, g.driver, g.dsn)
	g.observe(err, start)
	if err != nil {
		g.log.Error(err, "error connecting to database", "driver", g.driver)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	g.log.Debug("connected to database", "driver", g.driver)
	return &session{
		QueryerContext: db,
		ExecerContext:  db,
		bindType:       sqlx.BindType(g.driver),
		closer:         db.Close,
	}, nil
}

// Close is a no-op: direct sessions own their connections.
func (g *DirectGateway) Close() error {
	return nil
}

func (g *DirectGateway) observe(err error, start time.Time) {
	if g.obs != nil {
		g.obs.ObserveAcquire(err, time.Since(start))
	}
}

// PoolGateway checks a dedicated connection out of a shared pool. Closing
// the session returns the connection; it does not close the pool.
type PoolGateway struct {
	db  *sqlx.DB
	log *logger.Logger
	obs Observer
}

func NewPoolGateway(db *sqlx.DB, log *logger.Logger, obs Observer) *PoolGateway {
	return &PoolGateway{
		db:  db,
		log: log.With("gateway"),
		obs: obs,
	}
}

func (g *PoolGateway) Acquire(ctx context.Context) (Session, error) {
	start := time.Now()
	g.log.Debug("acquiring pooled connection", "driver", g.db.DriverName(), "mode", "pooled")

	conn, err := g.db.Connx(ctx)
	if err == nil {
		if err = conn.PingContext(ctx); err != nil {
			_ = conn.Close()
		}
	}
	if g.obs != nil {
		g.obs.ObserveAcquire(err, time.Since(start))
	}
	if err != nil {
		g.log.Error(err, "error acquiring pooled connection", "driver", g.db.DriverName())
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return &session{
		QueryerContext: conn,
		ExecerContext:  conn,
		bindType:       sqlx.BindType(g.db.DriverName()),
		closer:         conn.Close,
	}, nil
}

func (g *PoolGateway) Close() error {
	return g.db.Close()
}
