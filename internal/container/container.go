package container

import (
	"fmt"

	"exodash/adapters/archive"
	"exodash/adapters/excel"
	"exodash/app"
	"exodash/domain/run"
	"exodash/internal"
	"exodash/internal/config"
	"exodash/internal/dashboard"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Loader   *archive.Loader
	Composer *dashboard.Composer
	Summary  *excel.SummaryWriter

	// Services
	Dashboard *app.DashboardService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initAdapters(); err != nil {
		return nil, fmt.Errorf("failed to initialize adapters: %w", err)
	}
	c.initServices()

	logger.Debug("container initialized")
	return c, nil
}

// initAdapters initializes file readers and writers
func (c *Container) initAdapters() error {
	composer, err := dashboard.NewComposer(c.Config.Dashboard(), c.Logger)
	if err != nil {
		return err
	}
	c.Composer = composer
	c.Loader = archive.NewLoader(c.Config.Archive(), c.Logger)
	c.Summary = excel.NewSummaryWriter(c.Logger)
	return nil
}

// initServices initializes the application services
func (c *Container) initServices() {
	c.Dashboard = app.NewDashboardService(
		c.Loader,
		c.Composer,
		c.Summary,
		c.Config.Aggregates(),
		c.Thresholds(),
		c.Logger,
	)
}

// Thresholds collects the tunables stamped into run manifests
func (c *Container) Thresholds() run.Thresholds {
	loader := c.Config.Archive()
	aggregates := c.Config.Aggregates()
	return run.Thresholds{
		SkipLines:       loader.SkipLines,
		MethodThreshold: loader.MethodThreshold,
		TopQuantile:     aggregates.TopQuantile,
		MagnitudeBins:   aggregates.MagnitudeBins,
		TemperatureBins: aggregates.TemperatureBins,
		Layout:          c.Config.Dashboard().Layout,
	}
}
