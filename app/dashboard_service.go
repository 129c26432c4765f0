package app

import (
	"context"
	"time"

	"leanfunnel/internal"
	"leanfunnel/internal/errors"
	"leanfunnel/internal/funnel"
	"leanfunnel/ports"
)

// Dashboard is everything one page render needs
type Dashboard struct {
	Source    string                `json:"source"`
	Worksheet string                `json:"worksheet"`
	Result    *funnel.Result        `json:"result"`
	Summaries []funnel.ValueSummary `json:"summaries,omitempty"`
	History   []ports.Snapshot      `json:"history,omitempty"`
	LoadedAt  time.Time             `json:"loaded_at"`
	RuntimeMs int64                 `json:"runtime_ms"`
}

// DashboardService loads rows from a source and computes the funnel on every call
type DashboardService struct {
	source       ports.RowSource
	engine       *funnel.Engine
	config       funnel.Config
	snapshots    ports.SnapshotRepository
	historyLimit int
	logger       *internal.Logger
}

// DashboardOption configures a DashboardService
type DashboardOption func(*DashboardService)

// WithSnapshots records every successful load and lists the latest limit snapshots
func WithSnapshots(repo ports.SnapshotRepository, limit int) DashboardOption {
	return func(s *DashboardService) {
		s.snapshots = repo
		s.historyLimit = limit
	}
}

// WithEngineConfig replaces the default column names
func WithEngineConfig(config funnel.Config) DashboardOption {
	return func(s *DashboardService) {
		s.config = config
	}
}

// WithServiceLogger sets the logger
func WithServiceLogger(logger *internal.Logger) DashboardOption {
	return func(s *DashboardService) {
		s.logger = logger
	}
}

// NewDashboardService creates a dashboard service reading from source
func NewDashboardService(source ports.RowSource, opts ...DashboardOption) *DashboardService {
	s := &DashboardService{
		source: source,
		config: funnel.DefaultConfig(),
		logger: internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = funnel.NewEngine(s.config, nil)
	s.logger = s.logger.With("DashboardService")
	return s
}

// SourceName identifies where rows come from
func (s *DashboardService) SourceName() string {
	return s.source.Name()
}

// Load fetches the worksheet and computes the metrics.
// errors.ErrEmptyDataset is returned unchanged so callers can show the warning.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	start := time.Now()

	sheet, err := s.source.FetchSheet(ctx)
	if err != nil {
		if errors.GetCode(err) == errors.CodeExternalService {
			return nil, err
		}
		return nil, errors.ExternalServiceError(s.source.Name(), err)
	}
	s.logger.Debug("fetched %d rows from %s", len(sheet.Records), s.source.Name())

	result, err := s.engine.Compute(sheet)
	if err != nil {
		if errors.IsEmptyDataset(err) {
			s.logger.Warn("no valid enquiry data in %s", s.source.Name())
		}
		return nil, err
	}

	dashboard := &Dashboard{
		Source:    s.source.Name(),
		Worksheet: sheet.Name,
		Result:    result,
		Summaries: result.SummarizeValues(s.config),
		LoadedAt:  start.UTC(),
	}

	for _, report := range result.Coercion {
		if report.Unparsable > 0 {
			s.logger.Info("%d of %d cells in %s were not numeric and count as 0",
				report.Unparsable, report.Cells, report.Column)
		}
	}

	if s.snapshots != nil {
		dashboard.History = s.recordSnapshot(ctx, dashboard)
	}

	dashboard.RuntimeMs = time.Since(start).Milliseconds()
	return dashboard, nil
}

// History lists the latest snapshots without computing anything
func (s *DashboardService) History(ctx context.Context) ([]ports.Snapshot, error) {
	if s.snapshots == nil || s.historyLimit <= 0 {
		return []ports.Snapshot{}, nil
	}
	snapshots, err := s.snapshots.ListRecent(ctx, s.historyLimit)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to list snapshots"))
	}
	return snapshots, nil
}

// recordSnapshot never fails the load; storage problems are only logged
func (s *DashboardService) recordSnapshot(ctx context.Context, d *Dashboard) []ports.Snapshot {
	snapshot := &ports.Snapshot{
		Source:           d.Source,
		ComputedAt:       d.LoadedAt,
		FinalValueColumn: d.Result.FinalValueColumn,
		Metrics:          d.Result.Metrics,
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		s.logger.Error("failed to save snapshot: %v", err)
	}

	history, err := s.History(ctx)
	if err != nil {
		s.logger.Error("%v", err)
		return nil
	}
	return history
}
