package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobtrackr/jobtrackr/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DbContext struct {
	DB *gorm.DB
}

// NewDbContext opens the configured database. Postgres is the
// production driver; sqlite backs local development and tests.
func NewDbContext(driver, dsn string) (*DbContext, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	if err := c.DB.AutoMigrate(&models.Job{}); err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	if err := c.DB.AutoMigrate(&models.JobActivity{}); err != nil {
		return fmt.Errorf("failed to migrate JobActivity entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
