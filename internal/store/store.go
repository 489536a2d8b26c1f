package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ventradar/ventradar/pkg/insight"
)

// ListOpts controls insight listing.
type ListOpts struct {
	Category     string
	MinRelevance float64
	Since        time.Time
	Unalerted    bool
	Limit        int
}

// Store is the persistence interface.
type Store interface {
	UpsertInsight(ctx context.Context, in *insight.Insight) error
	UpsertInsights(ctx context.Context, ins []insight.Insight) error
	GetInsight(ctx context.Context, id string) (*insight.Insight, error)
	ListInsights(ctx context.Context, opts ListOpts) ([]insight.Insight, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	MarkAlerted(ctx context.Context, id string) error

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertInsight(ctx context.Context, in *insight.Insight) error {
	encodeColumns(in)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO insights (id, title, summary, category, relevance, dimensions, trend_keywords, community_signals, primary_source, trend_series, generated_at, fetched_at, alerted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			category = excluded.category,
			relevance = excluded.relevance,
			dimensions = excluded.dimensions,
			trend_keywords = excluded.trend_keywords,
			community_signals = excluded.community_signals,
			primary_source = excluded.primary_source,
			trend_series = excluded.trend_series,
			fetched_at = excluded.fetched_at
	`, in.ID, in.Title, in.Summary, in.Category, in.Relevance,
		in.DimensionsJSON, in.TrendKeywordsJSON, in.CommunitySignalsJSON,
		in.PrimarySourceJSON, in.TrendSeriesJSON,
		in.GeneratedAt, in.FetchedAt, in.Alerted)
	if err != nil {
		return fmt.Errorf("upsert insight %s: %w", in.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertInsights(ctx context.Context, ins []insight.Insight) error {
	for i := range ins {
		if err := s.UpsertInsight(ctx, &ins[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetInsight(ctx context.Context, id string) (*insight.Insight, error) {
	var in insight.Insight
	err := s.db.GetContext(ctx, &in, "SELECT * FROM insights WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get insight %s: %w", id, err)
	}
	decodeColumns(&in)
	return &in, nil
}

func (s *SQLiteStore) ListInsights(ctx context.Context, opts ListOpts) ([]insight.Insight, error) {
	query := "SELECT * FROM insights WHERE 1=1"
	var args []any

	if opts.Category != "" {
		query += " AND category = ?"
		args = append(args, opts.Category)
	}
	if opts.MinRelevance > 0 {
		query += " AND relevance >= ?"
		args = append(args, opts.MinRelevance)
	}
	if !opts.Since.IsZero() {
		query += " AND fetched_at >= ?"
		args = append(args, opts.Since)
	}
	if opts.Unalerted {
		query += " AND alerted = 0"
	}

	query += " ORDER BY relevance DESC, fetched_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var ins []insight.Insight
	if err := s.db.SelectContext(ctx, &ins, query, args...); err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}

	for i := range ins {
		decodeColumns(&ins[i])
	}
	return ins, nil
}

func (s *SQLiteStore) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT category, COUNT(*) as cnt FROM insights GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count insights by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var cnt int
		if err := rows.Scan(&category, &cnt); err != nil {
			return nil, err
		}
		counts[category] = cnt
	}
	return counts, nil
}

func (s *SQLiteStore) MarkAlerted(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE insights SET alerted = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark alerted %s: %w", id, err)
	}
	return nil
}

// encodeColumns serializes the structured fields into their JSON columns.
func encodeColumns(in *insight.Insight) {
	dims, _ := json.Marshal(in.Dimensions)
	keywords, _ := json.Marshal(in.TrendKeywords)
	signals, _ := json.Marshal(in.CommunitySignals)
	series, _ := json.Marshal(in.TrendSeries)

	in.DimensionsJSON = orDefault(string(dims), "{}")
	in.TrendKeywordsJSON = orDefault(string(keywords), "[]")
	in.CommunitySignalsJSON = orDefault(string(signals), "[]")
	in.TrendSeriesJSON = orDefault(string(series), "[]")

	in.PrimarySourceJSON = ""
	if in.PrimarySource != nil {
		src, _ := json.Marshal(in.PrimarySource)
		in.PrimarySourceJSON = string(src)
	}
}

// decodeColumns rehydrates the structured fields from their JSON columns.
func decodeColumns(in *insight.Insight) {
	json.Unmarshal([]byte(in.DimensionsJSON), &in.Dimensions)
	json.Unmarshal([]byte(in.TrendKeywordsJSON), &in.TrendKeywords)
	json.Unmarshal([]byte(in.CommunitySignalsJSON), &in.CommunitySignals)
	json.Unmarshal([]byte(in.TrendSeriesJSON), &in.TrendSeries)

	if in.PrimarySourceJSON != "" && in.PrimarySourceJSON != "null" {
		var src insight.SourceRef
		if err := json.Unmarshal([]byte(in.PrimarySourceJSON), &src); err == nil {
			in.PrimarySource = &src
		}
	}
}

func orDefault(s, def string) string {
	if s == "" || s == "null" {
		return def
	}
	return s
}
