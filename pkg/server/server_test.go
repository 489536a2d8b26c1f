package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ventradar/ventradar/internal/store"
	"github.com/ventradar/ventradar/pkg/insight"
	"github.com/ventradar/ventradar/pkg/server"
)

func seededServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	in := insight.Insight{
		ID:        "ins-1",
		Title:     "AI agent marketplaces",
		Category:  "devtools",
		Relevance: 0.85,
		Dimensions: insight.DimensionSet{
			insight.DimOpportunity: insight.Number(9),
			insight.DimWhyNow:      insight.Number(8),
			insight.DimFeasibility: insight.Number(6),
		},
		TrendKeywords: []insight.TrendKeyword{
			{Keyword: "ai agents", Volume: "27.1K", Growth: "+514%"},
		},
		GeneratedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		FetchedAt:   time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := db.UpsertInsight(context.Background(), &in); err != nil {
		t.Fatalf("seed insight: %v", err)
	}

	srv := httptest.NewServer(server.New(db, nil, nil, 0).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestServer(t *testing.T) {
	Convey("Given a server over a seeded store", t, func() {
		srv := seededServer(t)

		Convey("The health endpoint responds", func() {
			var body map[string]string
			So(getJSON(t, srv.URL+"/health", &body), ShouldEqual, http.StatusOK)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("The list endpoint returns engine-derived summaries", func() {
			var body struct {
				Data []struct {
					ID             string  `json:"id"`
					CompositeScore float64 `json:"composite_score"`
					ConfidenceTier string  `json:"confidence_tier"`
					EvidenceCount  int     `json:"evidence_count"`
				} `json:"data"`
				Count int `json:"count"`
			}
			So(getJSON(t, srv.URL+"/api/v1/insights", &body), ShouldEqual, http.StatusOK)
			So(body.Count, ShouldEqual, 1)
			So(body.Data[0].ID, ShouldEqual, "ins-1")
			So(body.Data[0].CompositeScore, ShouldAlmostEqual, (9.0+8+6)/3, 0.0001)
			So(body.Data[0].ConfidenceTier, ShouldEqual, "high")
			So(body.Data[0].EvidenceCount, ShouldEqual, 2) // keyword + dimension scores
		})

		Convey("The detail endpoint includes every derived view", func() {
			var body struct {
				DimensionScores map[string]float64 `json:"dimension_scores"`
				CompositeScore  float64            `json:"composite_score"`
				Series          struct {
					Points    []insight.TrendPoint `json:"points"`
					Estimated bool                 `json:"estimated"`
				} `json:"series"`
				MarketQuadrant string `json:"market_quadrant"`
			}
			So(getJSON(t, srv.URL+"/api/v1/insights/ins-1", &body), ShouldEqual, http.StatusOK)
			So(body.DimensionScores["opportunity"], ShouldEqual, 9)
			So(body.CompositeScore, ShouldAlmostEqual, (9.0+8+6)/3, 0.0001)
			So(body.Series.Points, ShouldHaveLength, 36)
			So(body.Series.Estimated, ShouldBeFalse)
			// Feasibility 6 (x), opportunity 9 (y) lands in the high/high quadrant.
			So(body.MarketQuadrant, ShouldEqual, "Prime Targets")
		})

		Convey("The series endpoint serves the synthesized series alone", func() {
			var body struct {
				Points []insight.TrendPoint `json:"points"`
			}
			So(getJSON(t, srv.URL+"/api/v1/insights/ins-1/series", &body), ShouldEqual, http.StatusOK)
			So(body.Points, ShouldHaveLength, 36)
		})

		Convey("The positioning endpoint classifies caller-supplied axes", func() {
			var body struct {
				Quadrant string `json:"quadrant"`
			}
			url := srv.URL + "/api/v1/insights/ins-1/positioning?x=3&y=9"
			So(getJSON(t, url, &body), ShouldEqual, http.StatusOK)
			So(body.Quadrant, ShouldEqual, "Value Leaders")

			url = srv.URL + "/api/v1/insights/ins-1/positioning?x=3&y=9&map=market"
			So(getJSON(t, url, &body), ShouldEqual, http.StatusOK)
			So(body.Quadrant, ShouldEqual, "Moonshots")
		})

		Convey("Positioning without axes is a bad request", func() {
			So(getJSON(t, srv.URL+"/api/v1/insights/ins-1/positioning", nil), ShouldEqual, http.StatusBadRequest)
		})

		Convey("Unknown insights are not found", func() {
			So(getJSON(t, srv.URL+"/api/v1/insights/nope", nil), ShouldEqual, http.StatusNotFound)
		})

		Convey("The categories endpoint aggregates counts", func() {
			var body struct {
				Data map[string]int `json:"data"`
			}
			So(getJSON(t, srv.URL+"/api/v1/categories", &body), ShouldEqual, http.StatusOK)
			So(body.Data["devtools"], ShouldEqual, 1)
		})

		Convey("Write methods on read endpoints are rejected", func() {
			resp, err := http.Post(srv.URL+"/api/v1/insights", "application/json", nil)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Sync with no backend configured reports zero synced", func() {
			resp, err := http.Post(srv.URL+"/api/v1/sync", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var body struct {
				Synced int `json:"synced"`
			}
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
			So(body.Synced, ShouldEqual, 0)
		})
	})
}
