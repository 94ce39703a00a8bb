package database

import (
	"context"
	"fmt"
	"time"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// CorpusAccess selects how a pool may touch the questions table.
type CorpusAccess int

const (
	// CorpusRead is the server's one-shot load at startup.
	CorpusRead CorpusAccess = iota
	// CorpusWrite is used by the seeder.
	CorpusWrite
)

func (a CorpusAccess) String() string {
	if a == CorpusWrite {
		return "seed"
	}
	return "load"
}

const (
	corpusConnectTimeout = 5 * time.Second
	corpusIdleTime       = time.Minute
)

// NewPostgresPool connects to the corpus database and pings it.
func NewPostgresPool(ctx context.Context, cfg *config.Config, access CorpusAccess, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := corpusPoolConfig(cfg, access)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, corpusConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping corpus database: %w", err)
	}

	log.Info().
		Str("component", "corpus_db").
		Str("access", access.String()).
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("PostgreSQL connected")

	return pool, nil
}

// corpusPoolConfig sizes the pool for access. The startup load runs a single
// query inside read-only sessions; the seeder gets MAX_DB_CONNS read-write
// connections.
func corpusPoolConfig(cfg *config.Config, access CorpusAccess) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	rt := poolCfg.ConnConfig.RuntimeParams
	if _, ok := rt["application_name"]; !ok {
		rt["application_name"] = "blindcoding-" + access.String()
	}

	switch access {
	case CorpusRead:
		rt["default_transaction_read_only"] = "on"
		poolCfg.MaxConns = 1
	default:
		poolCfg.MaxConns = cfg.MaxDBConns
		if poolCfg.MaxConns < 1 {
			poolCfg.MaxConns = 1
		}
	}

	poolCfg.MinConns = 0
	poolCfg.MaxConnIdleTime = corpusIdleTime
	if poolCfg.ConnConfig.ConnectTimeout == 0 {
		poolCfg.ConnConfig.ConnectTimeout = corpusConnectTimeout
	}
	return poolCfg, nil
}
