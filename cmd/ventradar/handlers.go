package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/ventradar/ventradar/internal/config"
	"github.com/ventradar/ventradar/internal/scheduler"
	"github.com/ventradar/ventradar/internal/store"
	"github.com/ventradar/ventradar/pkg/alert"
	"github.com/ventradar/ventradar/pkg/fetch"
	"github.com/ventradar/ventradar/pkg/insight"
	"github.com/ventradar/ventradar/pkg/scoring"
	"github.com/ventradar/ventradar/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildFetch(cfg *config.Config) (*fetch.Client, *fetch.Feed) {
	client := fetch.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey)

	var feed *fetch.Feed
	if cfg.Backend.FeedURL != "" {
		feed = fetch.NewFeed(cfg.Backend.FeedURL, client)
	}
	return client, feed
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func runSync() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	client, feed := buildFetch(cfg)
	ctx := context.Background()
	total := 0

	fmt.Fprintf(os.Stderr, "syncing from %s...\n", cfg.Backend.BaseURL)
	ins, err := client.ListInsights(ctx, time.Time{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "  backend error: %v\n", err)
	} else if err := db.UpsertInsights(ctx, ins); err != nil {
		fmt.Fprintf(os.Stderr, "  store error: %v\n", err)
	} else {
		total += len(ins)
	}

	if feed != nil {
		fmt.Fprintln(os.Stderr, "checking announcement feed...")
		ins, err := feed.Collect(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  feed error: %v\n", err)
		} else if err := db.UpsertInsights(ctx, ins); err != nil {
			fmt.Fprintf(os.Stderr, "  feed store error: %v\n", err)
		} else {
			total += len(ins)
		}
	}

	fmt.Fprintf(os.Stderr, "\ntotal: %d insights synced\n", total)
	return nil
}

func runList(jsonOutput bool, category string, minScore float64, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	// Over-fetch so the post-hoc composite filter still fills the table.
	ins, err := db.ListInsights(context.Background(), store.ListOpts{
		Category: category,
		Limit:    limit * 5,
	})
	if err != nil {
		return fmt.Errorf("list insights: %w", err)
	}

	type row struct {
		ID         string                 `json:"id"`
		Title      string                 `json:"title"`
		Category   string                 `json:"category"`
		Score      float64                `json:"composite_score"`
		Confidence scoring.ConfidenceTier `json:"confidence_tier"`
		Evidence   int                    `json:"evidence_count"`
	}

	var rows []row
	for i := range ins {
		score := scoring.OverallScore(&ins[i])
		if score < minScore {
			continue
		}
		conf := scoring.AggregateConfidence(&ins[i])
		rows = append(rows, row{
			ID:         ins[i].ID,
			Title:      ins[i].Title,
			Category:   ins[i].Category,
			Score:      score,
			Confidence: conf.Tier,
			Evidence:   conf.EvidenceCount,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	if len(rows) > limit {
		rows = rows[:limit]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("no insights found (try syncing first: ventradar sync)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tCONFIDENCE\tEVIDENCE\tCATEGORY\tTITLE")
	for _, r := range rows {
		fmt.Fprintf(w, "%.1f\t%s\t%d\t%s\t%s\n",
			r.Score, r.Confidence, r.Evidence, r.Category, r.Title)
	}
	return w.Flush()
}

func runShow(id string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	in, err := db.GetInsight(context.Background(), id)
	if err != nil {
		return fmt.Errorf("get insight: %w", err)
	}

	out := map[string]any{
		"insight":          in,
		"dimension_scores": scoring.DimensionScores(in),
		"composite_score":  scoring.OverallScore(in),
		"confidence":       scoring.AggregateConfidence(in),
		"series":           scoring.BuildSeries(in),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runImport(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var ins []insight.Insight
	if err := json.Unmarshal(data, &ins); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	now := time.Now().UTC()
	for i := range ins {
		if ins[i].ID == "" {
			ins[i].ID = uuid.NewString()
		}
		if ins[i].FetchedAt.IsZero() {
			ins[i].FetchedAt = now
		}
		if ins[i].GeneratedAt.IsZero() {
			ins[i].GeneratedAt = now
		}
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := db.UpsertInsights(context.Background(), ins); err != nil {
		return fmt.Errorf("import insights: %w", err)
	}

	fmt.Fprintf(os.Stderr, "imported %d insights from %s\n", len(ins), path)
	return nil
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	client, feed := buildFetch(cfg)
	srv := server.New(db, client, feed, port)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	client, feed := buildFetch(cfg)
	alertMgr := buildAlertManager(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(db, client, feed, alertMgr,
		cfg.Schedule.ParseSyncInterval(),
		cfg.Schedule.ParseAlertInterval(),
		cfg.Scoring.AlertMinScore,
	)

	// Start scheduler in background.
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "scheduler error: %v\n", err)
		}
	}()

	srv := server.New(db, client, feed, port)
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nshutting down...")
	}()

	return srv.ListenAndServe()
}
