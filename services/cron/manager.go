package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Manager runs the scheduled background jobs.
type Manager struct {
	cron *cron.Cron
	db   *gorm.DB
}

// NewManager creates a new cron manager
func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers all jobs and starts the scheduler
func (m *Manager) Start() error {
	log.Println("Starting cron jobs...")

	// Hourly: verify the enrollment capacity invariant
	if _, err := m.cron.AddFunc("@hourly", func() {
		log.Println("[CRON] running capacity_audit")
		m.AuditCourseCapacity()
	}); err != nil {
		return err
	}

	// Daily at 2 AM: report audit log volume
	if _, err := m.cron.AddFunc("0 2 * * *", func() {
		log.Println("[CRON] running audit_log_stats")
		m.ReportAuditLogVolume()
	}); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to drain
func (m *Manager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}
