package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ventradar/ventradar/internal/store"
	"github.com/ventradar/ventradar/pkg/alert"
	"github.com/ventradar/ventradar/pkg/fetch"
	"github.com/ventradar/ventradar/pkg/insight"
	"github.com/ventradar/ventradar/pkg/metrics"
	"github.com/ventradar/ventradar/pkg/scoring"
)

// Scheduler runs periodic backend sync and alert scans.
type Scheduler struct {
	store    store.Store
	client   *fetch.Client
	feed     *fetch.Feed // optional
	alertMgr *alert.Manager
	syncInt  time.Duration
	alertInt time.Duration
	minScore float64

	lastSync time.Time
}

// New creates a new scheduler.
func New(
	s store.Store,
	client *fetch.Client,
	feed *fetch.Feed,
	alertMgr *alert.Manager,
	syncInt, alertInt time.Duration,
	minScore float64,
) *Scheduler {
	if syncInt == 0 {
		syncInt = 30 * time.Minute
	}
	if alertInt == 0 {
		alertInt = time.Hour
	}
	if minScore == 0 {
		minScore = 8
	}
	return &Scheduler{
		store:    s,
		client:   client,
		feed:     feed,
		alertMgr: alertMgr,
		syncInt:  syncInt,
		alertInt: alertInt,
		minScore: minScore,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	syncTicker := time.NewTicker(s.syncInt)
	alertTicker := time.NewTicker(s.alertInt)
	defer syncTicker.Stop()
	defer alertTicker.Stop()

	// Run immediately on start.
	fmt.Fprintln(os.Stderr, "scheduler: initial sync...")
	s.syncAll(ctx)
	fmt.Fprintln(os.Stderr, "scheduler: initial alert scan...")
	s.scanAndAlert(ctx)

	fmt.Fprintf(os.Stderr, "scheduler: running (sync every %s, alerts every %s)\n",
		s.syncInt, s.alertInt)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "scheduler: stopped")
			return ctx.Err()
		case <-syncTicker.C:
			fmt.Fprintln(os.Stderr, "scheduler: syncing...")
			s.syncAll(ctx)
		case <-alertTicker.C:
			fmt.Fprintln(os.Stderr, "scheduler: scanning for alerts...")
			s.scanAndAlert(ctx)
		}
	}
}

func (s *Scheduler) syncAll(ctx context.Context) {
	since := s.lastSync
	total := 0

	if s.client != nil {
		ins, err := s.client.ListInsights(ctx, since)
		if err != nil {
			metrics.SyncErrors.Inc()
			fmt.Fprintf(os.Stderr, "  backend error: %v\n", err)
		} else if err := s.store.UpsertInsights(ctx, ins); err != nil {
			fmt.Fprintf(os.Stderr, "  store error: %v\n", err)
		} else {
			total += len(ins)
		}
	}

	if s.feed != nil {
		ins, err := s.feed.Collect(ctx)
		if err != nil {
			metrics.SyncErrors.Inc()
			fmt.Fprintf(os.Stderr, "  feed error: %v\n", err)
		} else if err := s.store.UpsertInsights(ctx, ins); err != nil {
			fmt.Fprintf(os.Stderr, "  feed store error: %v\n", err)
		} else {
			total += len(ins)
		}
	}

	metrics.InsightsSynced.Add(float64(total))
	s.lastSync = time.Now().UTC()
	fmt.Fprintf(os.Stderr, "  synced %d insights\n", total)
}

// scanAndAlert notifies on unalerted insights whose composite score clears
// the threshold, then marks them so they alert at most once.
func (s *Scheduler) scanAndAlert(ctx context.Context) {
	if !s.alertMgr.HasNotifiers() {
		return
	}

	ins, err := s.store.ListInsights(ctx, store.ListOpts{Unalerted: true, Limit: 500})
	if err != nil {
		fmt.Fprintf(os.Stderr, "  alert scan error: %v\n", err)
		return
	}

	for i := range ins {
		score := scoring.OverallScore(&ins[i])
		if score < s.minScore {
			continue
		}

		conf := scoring.AggregateConfidence(&ins[i])
		notification := &alert.Notification{
			Title:          ins[i].Title,
			Body:           ins[i].Summary,
			URL:            sourceURL(&ins[i]),
			Category:       ins[i].Category,
			CompositeScore: score,
			ConfidenceTier: string(conf.Tier),
			EvidenceCount:  conf.EvidenceCount,
		}

		if err := s.alertMgr.Broadcast(ctx, notification); err != nil {
			fmt.Fprintf(os.Stderr, "  alert error for %q: %v\n", ins[i].Title, err)
			continue
		}

		metrics.AlertsSent.Inc()
		_ = s.store.MarkAlerted(ctx, ins[i].ID)
		fmt.Fprintf(os.Stderr, "  alerted: %s (score: %.1f)\n", ins[i].Title, score)
	}
}

func sourceURL(in *insight.Insight) string {
	if in.PrimarySource != nil {
		return in.PrimarySource.URL
	}
	return ""
}
