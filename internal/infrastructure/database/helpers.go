package database

import (
	"fmt"
	"time"
)

// PoolStats là snapshot thống kê của connection pool, trả về qua /health
type PoolStats struct {
	TotalConns        int32         `json:"total_conns"`
	IdleConns         int32         `json:"idle_conns"`
	AcquiredConns     int32         `json:"acquired_conns"`
	MaxConns          int32         `json:"max_conns"`
	AcquireCount      int64         `json:"acquire_count"`
	AvgAcquireLatency time.Duration `json:"avg_acquire_latency_ns"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:        raw.TotalConns(),
		IdleConns:         raw.IdleConns(),
		AcquiredConns:     raw.AcquiredConns(),
		MaxConns:          raw.MaxConns(),
		AcquireCount:      raw.AcquireCount(),
		AvgAcquireLatency: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func calculateAvgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}
