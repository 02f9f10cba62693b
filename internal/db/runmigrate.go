package db

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// RunMigrations is a lightweight entry point you can invoke from tests or a small main.
// It respects the MIGRATIONS env var just like ConnectAndMigrate.
func RunMigrations() error {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil
	}
	if os.Getenv("MIGRATIONS") == "" {
		log.Info("MIGRATIONS env not set; skipping sql migrations (AutoMigrate path used at app start)")
		return nil
	}
	log.Info("running explicit SQL migrations")
	return runSQLMigrations(dsn)
}
