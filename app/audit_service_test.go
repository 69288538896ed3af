package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"testing"
	"time"

	"biasaudit/adapters/export"
	"biasaudit/domain/core"
	"biasaudit/domain/trial"
	"biasaudit/internal"
	"biasaudit/internal/errors"
	"biasaudit/internal/report"
	"biasaudit/internal/testkit"
	"biasaudit/internal/trialstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClock struct {
	mock.Mock
}

func (m *mockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Format() string    { return "mock" }
func (m *mockExporter) Extension() string { return "txt" }

func (m *mockExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	args := m.Called(ctx, w, r)
	return args.Error(0)
}

var fixedTime = time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)

func newTestService(t *testing.T, exporters ExporterLookup) (*AuditService, *mockClock) {
	t.Helper()
	clock := &mockClock{}
	clock.On("Now").Return(fixedTime)

	svc, err := NewAuditService(AuditServiceConfig{
		Store:       trialstore.New(),
		Clock:       clock,
		Exporters:   exporters,
		Logger:      internal.NewLoggerWithOutput(internal.LogLevelError, io.Discard),
		Concurrency: 2,
	})
	require.NoError(t, err)
	return svc, clock
}

func submission(biasedFirst bool, choice trial.Choice) trial.Submission {
	fair := trial.ScoredOption{Label: testkit.UnbiasedLabel, Score: 0.75}
	biased := trial.ScoredOption{Label: "Gender Biased Judge", Score: 0.5, Biased: true}
	presented := [2]trial.ScoredOption{fair, biased}
	if biasedFirst {
		presented = [2]trial.ScoredOption{biased, fair}
	}
	return trial.Submission{SubjectID: "sarah-chen", Presented: presented, Choice: choice}
}

func TestNewAuditService_RequiresStore(t *testing.T) {
	_, err := NewAuditService(AuditServiceConfig{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAuditService_Submit(t *testing.T) {
	svc, clock := newTestService(t, nil)
	ctx := context.Background()

	tr, err := svc.Submit(ctx, submission(true, trial.ChoiceFirst))
	require.NoError(t, err)
	assert.True(t, tr.IsChoiceCorrect)
	assert.Equal(t, 0.75, tr.ScoreA)
	assert.Equal(t, 0.5, tr.ScoreB)
	assert.True(t, tr.RecordedAt.Time().Equal(fixedTime))

	tr, err = svc.Submit(ctx, submission(true, trial.ChoiceSecond))
	require.NoError(t, err)
	assert.False(t, tr.IsChoiceCorrect)

	assert.Equal(t, 2, svc.Len())
	clock.AssertNumberOfCalls(t, "Now", 2)
}

func TestAuditService_SubmitInvalidChoice(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Submit(context.Background(), submission(false, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidChoice)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Zero(t, svc.Len())
}

func TestAuditService_RecordStampsMissingTime(t *testing.T) {
	svc, _ := newTestService(t, nil)

	err := svc.Record(context.Background(), trial.Trial{ScoreA: 0.5, ScoreB: 0.25, UserChoice: trial.ChoiceFirst})
	require.NoError(t, err)

	r, err := svc.GenerateReport(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Trials, 1)
	assert.True(t, r.Trials[0].RecordedAt.Time().Equal(fixedTime))
}

func TestAuditService_RecordAllStopsAtInvalid(t *testing.T) {
	svc, _ := newTestService(t, nil)
	trials := []trial.Trial{
		{ScoreA: 0.5, ScoreB: 0.25, UserChoice: trial.ChoiceFirst, RecordedAt: core.NewTimestamp(fixedTime)},
		{ScoreA: 0.5, ScoreB: 0.25, UserChoice: 0, RecordedAt: core.NewTimestamp(fixedTime)},
		{ScoreA: 0.5, ScoreB: 0.25, UserChoice: trial.ChoiceSecond, RecordedAt: core.NewTimestamp(fixedTime)},
	}

	err := svc.RecordAll(context.Background(), trials)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trial 2")
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Equal(t, 1, svc.Len())
}

func TestAuditService_MetricsTracksHistory(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	assert.Equal(t, 0, svc.Metrics().Total)
	assert.Equal(t, 1.0, svc.Metrics().PValue)

	for i := 0; i < 4; i++ {
		_, err := svc.Submit(ctx, submission(i%2 == 0, trial.ChoiceFirst))
		require.NoError(t, err)
	}

	m := svc.Metrics()
	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 2, m.Correct)
	assert.InDelta(t, 0.5, m.Accuracy, 1e-12)
}

func TestAuditService_GenerateReportIsDeterministic(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	_, err := svc.Submit(ctx, submission(true, trial.ChoiceFirst))
	require.NoError(t, err)

	first, err := svc.GenerateReport(ctx)
	require.NoError(t, err)
	second, err := svc.GenerateReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Markdown, second.Markdown)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestAuditService_GenerateReportCancelled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateReport(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuditService_ExportUsesRegisteredExporter(t *testing.T) {
	exporter := &mockExporter{}
	exporter.On("Export", mock.Anything, mock.Anything, mock.AnythingOfType("*report.AuditReport")).Return(nil)

	svc, _ := newTestService(t, export.NewRegistry(exporter))
	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf, "mock"))

	exporter.AssertExpectations(t)
}

func TestAuditService_ExportFailure(t *testing.T) {
	exporter := &mockExporter{}
	exporter.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("disk full"))

	svc, _ := newTestService(t, export.NewRegistry(exporter))
	err := svc.Export(context.Background(), &bytes.Buffer{}, "mock")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExportFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), "disk full")
}

func TestAuditService_ExportUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t, export.DefaultRegistry())

	err := svc.Export(context.Background(), &bytes.Buffer{}, "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAuditService_ExportMarkdownMatchesReport(t *testing.T) {
	svc, _ := newTestService(t, export.DefaultRegistry())
	ctx := context.Background()
	_, err := svc.Submit(ctx, submission(false, trial.ChoiceSecond))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf, "markdown"))

	r, err := svc.GenerateReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, r.Markdown, buf.String())
}

func TestAuditService_ComposeByPersona(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	sim, err := testkit.NewSimulator(testkit.DefaultSimulatorConfig())
	require.NoError(t, err)
	trials, err := sim.Run(40)
	require.NoError(t, err)
	require.NoError(t, svc.RecordAll(ctx, trials))

	reports, err := svc.ComposeByPersona(ctx)
	require.NoError(t, err)

	groups := trial.GroupByPersona(trials)
	require.Len(t, reports, len(groups))

	total := 0
	for i, pr := range reports {
		assert.Equal(t, groups[i].Persona, pr.Persona)
		assert.Equal(t, len(groups[i].Trials), pr.Report.Metrics.Total)
		total += pr.Report.Metrics.Total
	}
	assert.Equal(t, 40, total)
}

func TestAuditService_ComposeByPersonaCancelled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	_, err := svc.Submit(ctx, submission(true, trial.ChoiceFirst))
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = svc.ComposeByPersona(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
