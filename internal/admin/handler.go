// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/docmailer/internal/account"
	"github.com/carterperez-dev/docmailer/internal/core"
	"github.com/carterperez-dev/docmailer/internal/document"
)

type Handler struct {
	dbStats        func() sql.DBStats
	redisStats     func() *redis.PoolStats
	dbPing         func(ctx context.Context) error
	redisPing      func(ctx context.Context) error
	accountCounts  func(ctx context.Context) (*account.Counts, error)
	documentCounts func(ctx context.Context) (*document.Counts, error)
}

type HandlerConfig struct {
	DBStats        func() sql.DBStats
	RedisStats     func() *redis.PoolStats
	DBPing         func(ctx context.Context) error
	RedisPing      func(ctx context.Context) error
	AccountCounts  func(ctx context.Context) (*account.Counts, error)
	DocumentCounts func(ctx context.Context) (*document.Counts, error)
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:        cfg.DBStats,
		redisStats:     cfg.RedisStats,
		dbPing:         cfg.DBPing,
		redisPing:      cfg.RedisPing,
		accountCounts:  cfg.AccountCounts,
		documentCounts: cfg.DocumentCounts,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbHealthy := true
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			dbHealthy = false
		}
	}

	redisHealthy := true
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			redisHealthy = false
		}
	}

	users, err := h.accountCounts(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	documents, err := h.documentCounts(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response := StatsResponse{
		Users: UserStats{
			Total:    users.Total,
			Active:   users.Active,
			Inactive: users.Total - users.Active,
			Monthly:  users.Monthly,
			Lifetime: users.Lifetime,
		},
		Documents: DocumentStats{
			Total:   documents.Total,
			Pending: documents.Pending,
			Sent:    documents.Sent,
			Failed:  documents.Failed,
		},
		Database: DatabaseStatus{
			Healthy: dbHealthy,
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: redisHealthy,
			Stats:   h.getRedisStats(),
		},
		Runtime: runtimeStats(&memStats),
	}

	core.OK(w, response)
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	core.OK(w, runtimeStats(&memStats))
}

func runtimeStats(memStats *runtime.MemStats) RuntimeStats {
	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

type StatsResponse struct {
	Users     UserStats      `json:"users"`
	Documents DocumentStats  `json:"documents"`
	Database  DatabaseStatus `json:"database"`
	Redis     RedisStatus    `json:"redis"`
	Runtime   RuntimeStats   `json:"runtime"`
}

type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Monthly  int `json:"monthly"`
	Lifetime int `json:"lifetime"`
}

type DocumentStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
