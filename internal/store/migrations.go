package store

const schema = `
CREATE TABLE IF NOT EXISTS insights (
    id                TEXT PRIMARY KEY,
    title             TEXT NOT NULL,
    summary           TEXT NOT NULL DEFAULT '',
    category          TEXT NOT NULL DEFAULT '',
    relevance         REAL NOT NULL DEFAULT 0,
    dimensions        TEXT NOT NULL DEFAULT '{}',
    trend_keywords    TEXT NOT NULL DEFAULT '[]',
    community_signals TEXT NOT NULL DEFAULT '[]',
    primary_source    TEXT NOT NULL DEFAULT '',
    trend_series      TEXT NOT NULL DEFAULT '[]',
    generated_at      DATETIME NOT NULL,
    fetched_at        DATETIME NOT NULL,
    alerted           BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_insights_relevance ON insights(relevance);
CREATE INDEX IF NOT EXISTS idx_insights_category ON insights(category);
CREATE INDEX IF NOT EXISTS idx_insights_fetched_at ON insights(fetched_at);
`
