package app

import (
	"context"
	"time"

	"exodash/domain/catalog"
	"exodash/domain/core"
	"exodash/domain/run"
	"exodash/internal"
	"exodash/internal/aggregate"
	"exodash/internal/errors"
	"exodash/ports"
)

// DashboardService runs the load, aggregate and render pipeline
type DashboardService struct {
	reader     ports.CatalogReader
	renderer   ports.DashboardRenderer
	summary    ports.SummaryWriter
	aggregates aggregate.Config
	thresholds run.Thresholds
	logger     *internal.Logger
}

// DashboardRequest names the input and every output of one run
type DashboardRequest struct {
	InputPath    string
	OutputPath   string
	SummaryPath  string // optional
	ManifestPath string // optional
}

// DashboardResult describes a finished run
type DashboardResult struct {
	RunID     core.RunID              `json:"run_id"`
	Report    *catalog.CleaningReport `json:"report"`
	Views     aggregate.Views         `json:"-"`
	Manifest  *run.Manifest           `json:"manifest"`
	RuntimeMs int64                   `json:"runtime_ms"`
}

// NewDashboardService creates a dashboard service. summary may be nil when no
// workbook is wanted.
func NewDashboardService(
	reader ports.CatalogReader,
	renderer ports.DashboardRenderer,
	summary ports.SummaryWriter,
	aggregates aggregate.Config,
	thresholds run.Thresholds,
	logger *internal.Logger,
) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		reader:     reader,
		renderer:   renderer,
		summary:    summary,
		aggregates: aggregates,
		thresholds: thresholds,
		logger:     logger.With("component", "service"),
	}
}

// Render builds the dashboard for req.InputPath. The context is checked
// between stages; an error from any stage aborts the run.
func (s *DashboardService) Render(ctx context.Context, req DashboardRequest) (*DashboardResult, error) {
	start := time.Now()
	if req.InputPath == "" {
		return nil, errors.InvalidInput("input path is required")
	}
	if req.OutputPath == "" {
		return nil, errors.InvalidInput("output path is required")
	}

	inputHash, err := core.HashFile(req.InputPath)
	if err != nil {
		return nil, errors.ReadError(req.InputPath, err)
	}
	manifest := run.NewManifest(req.InputPath, inputHash, s.thresholds)
	logger := s.logger.With("run", manifest.RunID.String())
	logger.Info("rendering %s (input %s)", req.InputPath, inputHash.Short())

	table, report, err := s.reader.Load(req.InputPath)
	if err != nil {
		return nil, err
	}
	manifest.Report = report
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "cancelled after loading")
	}

	views := aggregate.Compute(table, s.aggregates)
	logger.Debug("aggregated %d rows into %d trend years, %d planet-count groups, %d star-count groups",
		table.Len(), len(views.Trend), len(views.Brightness.Groups), len(views.Orbits))
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "cancelled after aggregation")
	}

	if err := s.renderer.Save(req.OutputPath, views); err != nil {
		return nil, err
	}
	manifest.AddOutput(run.OutputDashboard, req.OutputPath)

	if req.SummaryPath != "" {
		if s.summary == nil {
			return nil, errors.ConfigInvalid("summary path given but no summary writer configured")
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "cancelled before summary")
		}
		if err := s.summary.Write(req.SummaryPath, views, report); err != nil {
			return nil, err
		}
		manifest.AddOutput(run.OutputSummary, req.SummaryPath)
	}

	if req.ManifestPath != "" {
		if err := manifest.WriteFile(req.ManifestPath); err != nil {
			return nil, errors.WriteError(req.ManifestPath, err)
		}
		logger.Info("manifest written to %s", req.ManifestPath)
	}

	runtime := time.Since(start).Milliseconds()
	logger.Info("run complete in %dms: %d of %d rows retained", runtime, report.RetainedRows, report.RawRows)
	return &DashboardResult{
		RunID:     manifest.RunID,
		Report:    report,
		Views:     views,
		Manifest:  manifest,
		RuntimeMs: runtime,
	}, nil
}

// Inspect loads and cleans the input without rendering anything
func (s *DashboardService) Inspect(ctx context.Context, inputPath string) (*catalog.CleaningReport, error) {
	if inputPath == "" {
		return nil, errors.InvalidInput("input path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "cancelled before loading")
	}
	_, report, err := s.reader.Load(inputPath)
	if err != nil {
		return nil, err
	}
	return report, nil
}
