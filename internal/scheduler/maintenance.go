package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/database"
)

// MaintenanceJob performs periodic database upkeep: an integrity check
// followed by VACUUM and ANALYZE. Runs weekly, outside trading hours.
type MaintenanceJob struct {
	log zerolog.Logger
	db  *database.DB
}

// NewMaintenanceJob creates a new maintenance job
func NewMaintenanceJob(db *database.DB, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		log: log.With().Str("job", "maintenance").Logger(),
		db:  db,
	}
}

// Name returns the job name
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Run executes the maintenance pass
func (j *MaintenanceJob) Run() error {
	start := time.Now()
	j.log.Info().Msg("Starting database maintenance")

	var result string
	if err := j.db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}

	if _, err := j.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}
	if _, err := j.db.Exec("ANALYZE"); err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	j.log.Info().
		Dur("duration", time.Since(start)).
		Msg("Database maintenance completed")

	return nil
}
