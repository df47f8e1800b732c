package commands

import (
	"fmt"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/config"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
)

// openDB loads the environment config and opens the database for a one-shot
// CLI command. The caller closes the returned handle.
func openDB() (*database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
