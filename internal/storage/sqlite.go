// Package storage persists cleaned records and the stats snapshot to a local
// SQLite database for offline inspection.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/freelens/freelens/internal/model"
)

// SnapshotStore writes dataset snapshots to SQLite.
type SnapshotStore struct {
	db     *sql.DB
	dbPath string
}

// NewSnapshotStore opens (or creates) the snapshot database at dbPath.
func NewSnapshotStore(dbPath string) (*SnapshotStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SnapshotStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Migrate creates the snapshot schema if it does not exist.
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			payment_method TEXT NOT NULL,
			client_region TEXT NOT NULL,
			experience_level TEXT NOT NULL,
			job_category TEXT NOT NULL,
			platform TEXT NOT NULL,
			earnings_usd REAL NOT NULL,
			hourly_rate REAL NOT NULL,
			job_success_rate REAL NOT NULL,
			client_rating REAL NOT NULL,
			job_duration_days REAL NOT NULL,
			rehire_rate REAL NOT NULL,
			marketing_spend REAL NOT NULL,
			jobs_completed REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS group_stats (
			metric TEXT NOT NULL,
			key TEXT NOT NULL,
			mean REAL NOT NULL,
			n INTEGER NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (metric, key)
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_meta (
			key TEXT PRIMARY KEY,
			value REAL
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot replaces any previous snapshot with the given records and
// stats bundle in a single transaction.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, records []model.Record, bundle model.StatsBundle) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"records", "group_stats", "snapshot_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertRecord, err := tx.PrepareContext(ctx, `INSERT INTO records (
		payment_method, client_region, experience_level, job_category, platform,
		earnings_usd, hourly_rate, job_success_rate, client_rating,
		job_duration_days, rehire_rate, marketing_spend, jobs_completed
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer func() { _ = insertRecord.Close() }()

	for _, r := range records {
		if _, err = insertRecord.ExecContext(ctx,
			r.PaymentMethod, r.ClientRegion, r.ExperienceLevel, r.JobCategory,
			r.Platform, r.EarningsUSD, r.HourlyRate, r.JobSuccessRate,
			r.ClientRating, r.JobDurationDays, r.RehireRate, r.MarketingSpend,
			r.JobsCompleted); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err = saveGroupStats(ctx, tx, map[string][]model.GroupStat{
		"regional_earnings":    bundle.RegionalEarnings,
		"experience_earnings":  bundle.ExperienceEarnings,
		"category_earnings":    bundle.CategoryEarnings,
		"platform_success":     bundle.PlatformSuccess,
		"rehire_by_experience": bundle.RehireByExperience,
	}); err != nil {
		return err
	}

	if err = saveMeta(ctx, tx, map[string]float64{
		"avg_earnings":          bundle.AvgEarnings,
		"crypto_earnings":       bundle.CryptoEarnings,
		"non_crypto_earnings":   bundle.NonCryptoEarnings,
		"rating_vs_earnings":    bundle.RatingVsEarnings,
		"duration_vs_rating":    bundle.DurationVsRating,
		"expert_projects_min":   bundle.ExpertProjects.Min,
		"expert_projects_max":   bundle.ExpertProjects.Max,
		"expert_projects_mean":  bundle.ExpertProjects.Mean,
		"expert_projects_count": float64(bundle.ExpertProjects.Count),
		"record_count":          float64(bundle.RecordCount),
	}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func saveGroupStats(ctx context.Context, tx *sql.Tx, metrics map[string][]model.GroupStat) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO group_stats (metric, key, mean, n, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare group stat insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for metric, groups := range metrics {
		for i, g := range groups {
			if _, err := stmt.ExecContext(ctx, metric, g.Key, g.Mean, g.Count, i); err != nil {
				return fmt.Errorf("failed to insert group stat %s/%s: %w", metric, g.Key, err)
			}
		}
	}
	return nil
}

func saveMeta(ctx context.Context, tx *sql.Tx, values map[string]float64) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_meta (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare meta insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for key, value := range values {
		// Undefined statistics (NaN) are stored as NULL
		var v any = value
		if math.IsNaN(value) {
			v = nil
		}
		if _, err := stmt.ExecContext(ctx, key, v); err != nil {
			return fmt.Errorf("failed to insert meta %s: %w", key, err)
		}
	}
	return nil
}

// RecordCount returns the number of records in the current snapshot.
func (s *SnapshotStore) RecordCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// GroupStats returns one metric's grouped stats in stored position order.
func (s *SnapshotStore) GroupStats(ctx context.Context, metric string) ([]model.GroupStat, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, mean, n FROM group_stats WHERE metric = ? ORDER BY position", metric)
	if err != nil {
		return nil, fmt.Errorf("failed to query group stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []model.GroupStat
	for rows.Next() {
		var g model.GroupStat
		if err := rows.Scan(&g.Key, &g.Mean, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group stat: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
