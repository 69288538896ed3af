package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"biasaudit/domain/audit"
	"biasaudit/domain/core"
	"biasaudit/domain/trial"
	"biasaudit/internal"
	"biasaudit/internal/errors"
	"biasaudit/internal/report"
	"biasaudit/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ExporterLookup resolves a format name to an exporter
type ExporterLookup interface {
	Get(format string) (ports.ReportExporterPort, error)
}

// AuditService runs one audit session: it records trials and turns the
// current history into metrics, reports and exports.
type AuditService struct {
	store       ports.TrialStorePort
	composer    *report.Composer
	clock       ports.ClockPort
	exporters   ExporterLookup
	logger      *internal.Logger
	concurrency int64
}

// AuditServiceConfig wires the service dependencies
type AuditServiceConfig struct {
	Store       ports.TrialStorePort
	Composer    *report.Composer
	Clock       ports.ClockPort
	Exporters   ExporterLookup
	Logger      *internal.Logger
	Concurrency int
}

// PersonaReport is the report of the trials scored by one persona
type PersonaReport struct {
	Persona string
	Report  *report.AuditReport
}

// NewAuditService creates an audit service; nil clock and logger fall back
// to the system clock and the default logger
func NewAuditService(cfg AuditServiceConfig) (*AuditService, error) {
	if cfg.Store == nil {
		return nil, errors.InvalidInput("trial store is required")
	}
	if cfg.Composer == nil {
		cfg.Composer = report.NewComposer(report.DefaultOptions())
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = internal.NewDefaultLogger()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &AuditService{
		store:       cfg.Store,
		composer:    cfg.Composer,
		clock:       cfg.Clock,
		exporters:   cfg.Exporters,
		logger:      cfg.Logger,
		concurrency: int64(cfg.Concurrency),
	}, nil
}

// Submit resolves a user's choice into a trial stamped with the current time
// and records it
func (s *AuditService) Submit(ctx context.Context, sub trial.Submission) (trial.Trial, error) {
	t, err := trial.NewFromSubmission(sub, s.clock.Now())
	if err != nil {
		s.logger.Warn("Rejected submission for subject %s: %v", sub.SubjectID, err)
		return trial.Trial{}, errors.WithCode(errors.CodeValidationError, err)
	}

	if err := s.store.Append(ctx, t); err != nil {
		return trial.Trial{}, errors.Wrap(err, "failed to record trial")
	}

	s.logger.Debug("Recorded trial %d: subject=%s persona=%q correct=%t",
		s.store.Len(), t.SubjectID, t.LabelB, t.IsChoiceCorrect)
	return t, nil
}

// Record appends an already-resolved trial, e.g. one loaded from a file.
// A trial without a timestamp is stamped with the current time.
func (s *AuditService) Record(ctx context.Context, t trial.Trial) error {
	if t.RecordedAt.IsZero() {
		stamped, err := trial.New(t.SubjectID, t.ScoreA, t.ScoreB, t.LabelA, t.LabelB,
			t.UserChoice, t.IsChoiceCorrect, t.Comment, s.clock.Now())
		if err != nil {
			return errors.WithCode(errors.CodeValidationError, err)
		}
		t = stamped
	}

	if err := s.store.Append(ctx, t); err != nil {
		if core.IsValidationError(err) {
			return errors.WithCode(errors.CodeValidationError, err)
		}
		return errors.Wrap(err, "failed to record trial")
	}
	return nil
}

// RecordAll appends trials in order and stops at the first invalid one
func (s *AuditService) RecordAll(ctx context.Context, trials []trial.Trial) error {
	for i, t := range trials {
		if err := s.Record(ctx, t); err != nil {
			return errors.Wrapf(err, "trial %d", i+1)
		}
	}
	s.logger.Info("Recorded %d trials", len(trials))
	return nil
}

// Len returns the number of recorded trials
func (s *AuditService) Len() int {
	return s.store.Len()
}

// Metrics recomputes the metrics over the current history
func (s *AuditService) Metrics() audit.MetricsReport {
	return s.composer.Metrics(s.store.Snapshot())
}

// GenerateReport composes a report from a snapshot of the current history
func (s *AuditService) GenerateReport(ctx context.Context) (*report.AuditReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	r := s.composer.Compose(s.store.Snapshot(), s.clock.Now())

	s.logger.Info("Composed audit report: trials=%d tier=%s fingerprint=%s (%v)",
		r.Metrics.Total, r.Metrics.RiskTier, r.Fingerprint.Short(), time.Since(start))
	return r, nil
}

// Export composes a fresh report and writes it in the requested format
func (s *AuditService) Export(ctx context.Context, w io.Writer, format string) error {
	r, err := s.GenerateReport(ctx)
	if err != nil {
		return err
	}
	return s.ExportReport(ctx, w, r, format)
}

// ExportReport writes an already composed report in the requested format
func (s *AuditService) ExportReport(ctx context.Context, w io.Writer, r *report.AuditReport, format string) error {
	if s.exporters == nil {
		return errors.InternalError("no exporters configured")
	}

	exporter, err := s.exporters.Get(format)
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}

	if err := exporter.Export(ctx, w, r); err != nil {
		s.logger.Error("Export to %s failed: %v", exporter.Format(), err)
		return errors.ExportFailed(exporter.Format(), err)
	}

	s.logger.Debug("Exported report %s as %s", r.Fingerprint.Short(), exporter.Format())
	return nil
}

// ComposeByPersona composes one report per biased persona, in order of the
// persona's first trial. At most the configured number of reports are
// composed at once.
func (s *AuditService) ComposeByPersona(ctx context.Context) ([]PersonaReport, error) {
	groups := trial.GroupByPersona(s.store.Snapshot())
	results := make([]PersonaReport, len(groups))
	now := s.clock.Now()

	sem := semaphore.NewWeighted(s.concurrency)
	g, gctx := errgroup.WithContext(ctx)

	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return fmt.Errorf("persona %q: %w", group.Persona, err)
			}
			defer sem.Release(1)

			results[i] = PersonaReport{
				Persona: group.Persona,
				Report:  s.composer.Compose(group.Trials, now),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Composed %d persona reports", len(results))
	return results, nil
}
