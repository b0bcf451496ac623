// Package tenantdb maps a plaintext tenant store name, recovered from a
// verified token claim, to a live gorm handle scoped to exactly that
// database. Physical isolation does the heavy lifting: a handle opened for
// tenant A cannot observe tenant B's rows because they live in different
// databases on the server.
package tenantdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
	"github.com/Bhavesh2823/Empora/internal/shared/connection"
)

var (
	ErrUnknownTenant = apperror.New(
		apperror.CodeUnknownTenant,
		"tenant store does not exist",
		http.StatusForbidden,
	)
	ErrStoreUnreachable = apperror.New(
		apperror.CodeServiceUnavailable,
		"tenant store is unreachable",
		http.StatusServiceUnavailable,
	)
)

var storeNamePattern = regexp.MustCompile(`^tenant_store_[0-9]+$`)

// StoreName derives the canonical database name for a client id. Names are
// a pure function of the id and are never reused, even after deletion.
func StoreName(id int64) string {
	return fmt.Sprintf("tenant_store_%d", id)
}

// ValidStoreName reports whether a name could have been produced by
// StoreName. A claim failing this check is treated as a forged or stale
// token, not as a reachable database.
func ValidStoreName(name string) bool {
	return storeNamePattern.MatchString(name)
}

type Config struct {
	DB connection.DBConfig // shared server credentials; Name is per-resolve
	// MaxStores bounds how many per-tenant handles stay pooled; the least
	// recently used handle is closed to admit a new one.
	MaxStores   int
	IdleTTL     time.Duration
	DialTimeout time.Duration
	// RetireGrace is how long an evicted handle stays open after leaving
	// the pool. Must outlive the longest unit of work; provisioning caps
	// itself at two minutes.
	RetireGrace time.Duration
}

func (c *Config) withDefaults() {
	if c.MaxStores <= 0 {
		c.MaxStores = 50
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 10 * time.Minute
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.RetireGrace <= 0 {
		c.RetireGrace = 3 * time.Minute
	}
}

type pooledStore struct {
	db       *gorm.DB
	lastUsed time.Time
}

// retiredStore is a handle evicted from the pool but not yet closed. An
// in-flight request resolved before the eviction may still be using it.
type retiredStore struct {
	db        *gorm.DB
	retiredAt time.Time
}

type dialFunc func(ctx context.Context, dbName string) (*gorm.DB, error)

// Router owns the pool of per-tenant handles. Handles returned by Resolve
// belong to the pool; callers use them for one unit of work and never close
// or cache them elsewhere.
type Router struct {
	cfg    Config
	dial   dialFunc
	logger *zap.Logger

	mu      sync.Mutex
	stores  map[string]*pooledStore
	retired []retiredStore

	done     chan struct{}
	stopOnce sync.Once
}

func NewRouter(cfg Config) *Router {
	cfg.withDefaults()

	r := &Router{
		cfg:    cfg,
		logger: zap.L().Named("tenantdb.router"),
		stores: make(map[string]*pooledStore),
		done:   make(chan struct{}),
	}
	r.dial = r.open

	go r.janitor()
	return r
}

// newRouterWithDial is the test seam: identical to NewRouter but with the
// dial step replaced.
func newRouterWithDial(cfg Config, dial dialFunc) *Router {
	cfg.withDefaults()

	r := &Router{
		cfg:    cfg,
		dial:   dial,
		logger: zap.NewNop(),
		stores: make(map[string]*pooledStore),
		done:   make(chan struct{}),
	}

	go r.janitor()
	return r
}

// Resolve returns a handle scoped to dbName. Unknown databases fail with
// ErrUnknownTenant (authorization-adjacent, never retried); transport
// failures fail with ErrStoreUnreachable (retryable).
func (r *Router) Resolve(ctx context.Context, dbName string) (*gorm.DB, error) {
	if !ValidStoreName(dbName) {
		return nil, apperror.Wrap(
			fmt.Errorf("store name %q does not match the provisioned pattern", dbName),
			apperror.CodeUnknownTenant,
			ErrUnknownTenant.Message,
			http.StatusForbidden,
		)
	}

	r.mu.Lock()
	if entry, ok := r.stores[dbName]; ok {
		entry.lastUsed = time.Now()
		db := entry.db
		r.mu.Unlock()
		return db, nil
	}
	r.mu.Unlock()

	// Dial outside the lock so one slow tenant cannot stall the others.
	ctx, cancel := context.WithTimeout(ctx, r.cfg.DialTimeout)
	defer cancel()

	db, err := r.dial(ctx, dbName)
	if err != nil {
		return nil, mapDialError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A concurrent Resolve may have won the race; keep theirs.
	if entry, ok := r.stores[dbName]; ok {
		entry.lastUsed = time.Now()
		closeHandle(db)
		return entry.db, nil
	}

	if len(r.stores) >= r.cfg.MaxStores {
		r.evictOldestLocked()
	}

	r.stores[dbName] = &pooledStore{db: db, lastUsed: time.Now()}
	r.logger.Info("tenant store handle opened",
		zap.String("db_name", dbName),
		zap.Int("pooled", len(r.stores)),
	)
	return db, nil
}

// Close drains the pool. Used on shutdown.
func (r *Router) Close() {
	r.stopOnce.Do(func() { close(r.done) })

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, entry := range r.stores {
		closeHandle(entry.db)
		delete(r.stores, name)
	}
	for _, entry := range r.retired {
		closeHandle(entry.db)
	}
	r.retired = nil
}

func (r *Router) open(ctx context.Context, dbName string) (*gorm.DB, error) {
	cfg := r.cfg.DB.WithName(dbName)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Per-store pool kept small; the Router's MaxStores bounds the total.
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func (r *Router) janitor() {
	interval := r.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.evictIdle()
			r.closeRetired()
		}
	}
}

func (r *Router) evictIdle() {
	cutoff := time.Now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, entry := range r.stores {
		if entry.lastUsed.Before(cutoff) {
			r.retireLocked(entry.db)
			delete(r.stores, name)
			r.logger.Info("idle tenant store handle evicted", zap.String("db_name", name))
		}
	}
}

func (r *Router) evictOldestLocked() {
	var oldestName string
	var oldestAt time.Time
	for name, entry := range r.stores {
		if oldestName == "" || entry.lastUsed.Before(oldestAt) {
			oldestName = name
			oldestAt = entry.lastUsed
		}
	}
	if oldestName != "" {
		r.retireLocked(r.stores[oldestName].db)
		delete(r.stores, oldestName)
		r.logger.Info("tenant store handle displaced", zap.String("db_name", oldestName))
	}
}

// retireLocked parks an evicted handle instead of closing it. A request
// that resolved the handle before the eviction keeps a working connection
// for the rest of its unit of work; the janitor closes the handle once
// RetireGrace has passed. Caller must hold r.mu.
func (r *Router) retireLocked(db *gorm.DB) {
	r.retired = append(r.retired, retiredStore{db: db, retiredAt: time.Now()})
}

func (r *Router) closeRetired() {
	cutoff := time.Now().Add(-r.cfg.RetireGrace)

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.retired[:0]
	for _, entry := range r.retired {
		if entry.retiredAt.Before(cutoff) {
			closeHandle(entry.db)
		} else {
			kept = append(kept, entry)
		}
	}
	r.retired = kept
}

func closeHandle(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func mapDialError(err error) error {
	// 3D000 invalid_catalog_name: the database name in the claim does not
	// exist. A forged or stale claim, not a transient fault.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "3D000" {
		return apperror.Wrap(err, apperror.CodeUnknownTenant, ErrUnknownTenant.Message, http.StatusForbidden)
	}
	if strings.Contains(err.Error(), "3D000") || strings.Contains(err.Error(), "does not exist") {
		return apperror.Wrap(err, apperror.CodeUnknownTenant, ErrUnknownTenant.Message, http.StatusForbidden)
	}

	return apperror.Wrap(err, apperror.CodeServiceUnavailable, ErrStoreUnreachable.Message, http.StatusServiceUnavailable)
}
