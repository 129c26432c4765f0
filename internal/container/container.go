package container

import (
	"context"
	"fmt"
	"time"

	"leanfunnel/adapters/excel"
	"leanfunnel/adapters/gsheets"
	"leanfunnel/adapters/postgres"
	"leanfunnel/app"
	"leanfunnel/internal"
	"leanfunnel/internal/config"
	"leanfunnel/internal/errors"
	"leanfunnel/internal/migration"
	"leanfunnel/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Data access
	Source    ports.RowSource
	Snapshots ports.SnapshotRepository

	// Services
	Dashboard *app.DashboardService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// InitSource picks the row source: the local file when DATA_FILE is set,
// otherwise the remote worksheet signed with the service-account key
func (c *Container) InitSource(ctx context.Context) error {
	if c.Config.UsesLocalFile() {
		c.Source = excel.NewDataReader(excel.ExcelConfig{
			FilePath:  c.Config.Data.File,
			Worksheet: c.Config.Sheets.Worksheet,
		}, c.Logger)
		c.Logger.Info("reading enquiries from %s", c.Config.Data.File)
		return nil
	}

	sheets := c.Config.Sheets
	key, err := gsheets.LoadServiceAccountKey(sheets.CredentialsJSON, sheets.CredentialsFile)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to load Google credentials"))
	}
	hc, err := gsheets.NewAuthorizedHTTPClient(ctx, key, sheets.Timeout)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to load Google credentials"))
	}

	client := gsheets.NewClient(
		gsheets.WithHTTPClient(hc),
		gsheets.WithBaseURL(sheets.BaseURL),
		gsheets.WithRetries(sheets.MaxRetries, time.Second),
		gsheets.WithLogger(c.Logger),
	)
	c.Source = gsheets.NewWorksheet(client, sheets.SheetID, sheets.Worksheet)
	c.Logger.Info("reading enquiries from worksheet %s of sheet %s", sheets.Worksheet, sheets.SheetID)
	return nil
}

// InitWithDatabase connects the snapshot history and runs its migrations
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.PingContext(ctx); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "database connection test failed"))
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "database migration failed"))
	}

	c.DB = db
	c.Snapshots = postgres.NewSnapshotRepository(db)
	return nil
}

// Build wires the dashboard service over whatever has been initialized
func (c *Container) Build() (*app.DashboardService, error) {
	if c.Source == nil {
		return nil, fmt.Errorf("row source not initialized")
	}
	opts := []app.DashboardOption{app.WithServiceLogger(c.Logger)}
	if c.Snapshots != nil {
		opts = append(opts, app.WithSnapshots(c.Snapshots, c.Config.Server.HistoryLimit))
	}
	c.Dashboard = app.NewDashboardService(c.Source, opts...)
	return c.Dashboard, nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
