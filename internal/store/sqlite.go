// Package store persists per-article results in SQLite. Records are
// keyed by article ID and overwritten on re-run, never appended as a
// stream, so a partially failed batch leaves earlier results intact.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/creedharan/sourcescore/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	article_id  TEXT PRIMARY KEY,
	url         TEXT NOT NULL,
	headline    TEXT,
	status      TEXT NOT NULL,
	policy      TEXT,
	category    TEXT,
	final_score REAL,
	exemption   TEXT,
	error       TEXT,
	detail      TEXT NOT NULL,
	scored_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_status ON results(status);
CREATE INDEX IF NOT EXISTS idx_results_category ON results(category);
`

// Store is a SQLite-backed result sink.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the result database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init result store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts one article's result. The full record is kept as JSON in
// detail; the scalar columns exist for dashboard queries.
func (s *Store) Save(res *model.Result) error {
	detail, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	var policy, category string
	var finalScore sql.NullFloat64
	if res.Score != nil {
		policy = res.Score.Policy
		category = res.Score.Category
	}
	if res.FinalScore != nil {
		finalScore = sql.NullFloat64{Float64: *res.FinalScore, Valid: true}
	}
	var exemption string
	if res.Exemption != nil {
		exemption = res.Exemption.Reason
	}

	_, err = s.db.Exec(`
		INSERT INTO results (article_id, url, headline, status, policy, category, final_score, exemption, error, detail, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(article_id) DO UPDATE SET
			url = excluded.url,
			headline = excluded.headline,
			status = excluded.status,
			policy = excluded.policy,
			category = excluded.category,
			final_score = excluded.final_score,
			exemption = excluded.exemption,
			error = excluded.error,
			detail = excluded.detail,
			scored_at = excluded.scored_at`,
		res.ArticleID, res.URL, res.Headline, string(res.Status), policy, category,
		finalScore, exemption, res.Error, string(detail), res.ScoredAt)
	if err != nil {
		return fmt.Errorf("save result %s: %w", res.ArticleID, err)
	}
	return nil
}

// Get loads one article's full result record.
func (s *Store) Get(articleID string) (*model.Result, error) {
	var detail string
	err := s.db.QueryRow(`SELECT detail FROM results WHERE article_id = ?`, articleID).Scan(&detail)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no result for article %s", articleID)
	}
	if err != nil {
		return nil, fmt.Errorf("load result %s: %w", articleID, err)
	}

	var res model.Result
	if err := json.Unmarshal([]byte(detail), &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", articleID, err)
	}
	return &res, nil
}

// RecentScored lists the most recently scored articles.
func (s *Store) RecentScored(limit int) ([]*model.Result, error) {
	rows, err := s.db.Query(`
		SELECT detail FROM results
		WHERE status = ?
		ORDER BY scored_at DESC
		LIMIT ?`, string(model.StatusScored), limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Result
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var res model.Result
		if err := json.Unmarshal([]byte(detail), &res); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

// CategoryAverages aggregates scored articles per category since a
// cutoff, the roll-up feeding editorial dashboards.
func (s *Store) CategoryAverages(since time.Time) (map[string]model.CatStat, error) {
	rows, err := s.db.Query(`
		SELECT category, COUNT(*), AVG(final_score)
		FROM results
		WHERE status = ? AND scored_at >= ? AND final_score IS NOT NULL
		GROUP BY category`, string(model.StatusScored), since)
	if err != nil {
		return nil, fmt.Errorf("query averages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]model.CatStat)
	for rows.Next() {
		var cat string
		var stat model.CatStat
		if err := rows.Scan(&cat, &stat.Count, &stat.AvgScore); err != nil {
			return nil, fmt.Errorf("scan average: %w", err)
		}
		out[cat] = stat
	}
	return out, rows.Err()
}
