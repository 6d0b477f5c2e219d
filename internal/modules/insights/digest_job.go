package insights

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// digestRangeLabel names the window the nightly digest covers
const digestRangeLabel = "Last 30 Days"

// DigestJob generates a nightly strategy summary over the last month
// of trading and caches it, so the reports view can show commentary
// without waiting on the model.
type DigestJob struct {
	db      *sql.DB
	service *Service
	log     zerolog.Logger
}

// NewDigestJob creates a new digest job
func NewDigestJob(db *sql.DB, service *Service, log zerolog.Logger) *DigestJob {
	return &DigestJob{
		db:      db,
		service: service,
		log:     log.With().Str("job", "insights-digest").Logger(),
	}
}

// Name returns the job name
func (j *DigestJob) Name() string {
	return "insights-digest"
}

// Run generates and stores the strategy digest
func (j *DigestJob) Run() error {
	trades, err := j.service.trades.List()
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}

	cutoff := time.Now().AddDate(0, -1, 0)
	recent := trades[:0:0]
	for _, t := range trades {
		if !t.ExitDate.Before(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 {
		j.log.Info().Msg("No recent trades, skipping digest")
		return nil
	}

	content := j.service.AnalyzeStrategy(context.Background(), recent, digestRangeLabel)

	_, err = j.db.Exec(
		`INSERT INTO insight_digests (range_label, content, generated_at) VALUES (?, ?, ?)`,
		digestRangeLabel, content, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store digest: %w", err)
	}

	j.log.Info().Int("trades", len(recent)).Msg("Strategy digest generated")
	return nil
}

// LatestDigest returns the most recently generated digest, or nil if
// none exists yet.
func LatestDigest(db *sql.DB) (*Digest, error) {
	row := db.QueryRow(`SELECT range_label, content, generated_at FROM insight_digests ORDER BY id DESC LIMIT 1`)

	var d Digest
	var generatedAt string
	if err := row.Scan(&d.RangeLabel, &d.Content, &generatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load digest: %w", err)
	}

	t, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse digest timestamp: %w", err)
	}
	d.GeneratedAt = t

	return &d, nil
}

// Digest is a cached nightly strategy summary
type Digest struct {
	RangeLabel  string    `json:"range_label"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}
