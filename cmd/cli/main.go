package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"biasaudit/adapters/excel"
	"biasaudit/adapters/export"
	"biasaudit/app"
	"biasaudit/domain/audit"
	"biasaudit/domain/core"
	"biasaudit/domain/trial"
	"biasaudit/internal"
	"biasaudit/internal/config"
	"biasaudit/internal/report"
	"biasaudit/internal/testkit"
	"biasaudit/internal/trialstore"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "biasaudit",
		Short: color.New(color.FgCyan, color.Bold).Sprint("Bias audit CLI: simulate sessions, compute metrics and compose audit reports"),
	}

	rootCmd.AddCommand(
		newSimulateCmd(),
		newReportCmd(),
		newMetricsCmd(),
		newPersonasCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime bundles what every command needs after configuration is loaded
type runtime struct {
	cfg      *config.Config
	logger   *internal.Logger
	registry *export.Registry
	service  *app.AuditService
}

func newRuntime() (*runtime, error) {
	if err := godotenv.Load(); err != nil {
		internal.NewDefaultLogger().Debug("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	registry := export.DefaultRegistry()

	composer := report.NewComposer(report.Options{
		Title:             cfg.Report.Title,
		NullProbability:   cfg.Report.NullProbability,
		SignificanceAlpha: cfg.Report.SignificanceAlpha,
		IncludeHistory:    cfg.Report.IncludeHistory,
	})

	service, err := app.NewAuditService(app.AuditServiceConfig{
		Store:       trialstore.New(),
		Composer:    composer,
		Exporters:   registry,
		Logger:      logger,
		Concurrency: cfg.Export.Concurrency,
	})
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, registry: registry, service: service}, nil
}

func newSimulateCmd() *cobra.Command {
	var trials int
	var seed int64
	var skill float64
	var personas []string
	var opts outputOptions

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a synthetic audit session and write its report",
		Long: `Simulate a tester reviewing scores from the unbiased AI model and the
biased personas, then compose and export the audit report.

Defaults come from SIM_TRIALS, SIM_SEED and SIM_DETECTION_SKILL.

Example: biasaudit simulate --trials 50 --skill 0.8 --persona "Gender Biased Judge" --format html --format xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			simCfg := testkit.DefaultSimulatorConfig()
			simCfg.Seed = rt.cfg.Simulation.Seed
			simCfg.DetectionSkill = rt.cfg.Simulation.DetectionSkill
			simCfg.Interval = rt.cfg.Simulation.Interval
			simCfg.Personas = personas
			n := rt.cfg.Simulation.Trials

			if cmd.Flags().Changed("seed") {
				simCfg.Seed = seed
			}
			if cmd.Flags().Changed("skill") {
				simCfg.DetectionSkill = skill
			}
			if cmd.Flags().Changed("trials") {
				n = trials
			}
			if n < 0 {
				return fmt.Errorf("--trials must be zero or more, got %d", n)
			}

			sim, err := testkit.NewSimulator(simCfg)
			if err != nil {
				return err
			}
			generated, err := sim.Run(n)
			if err != nil {
				return err
			}

			rt.logger.Info("Simulated %d trials (seed=%d, skill=%.2f)", n, simCfg.Seed, simCfg.DetectionSkill)
			return runAudit(cmd.Context(), cmd.OutOrStdout(), rt, generated, opts)
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 20, "Number of trials to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic sessions")
	cmd.Flags().Float64Var(&skill, "skill", 0.7, "Probability the simulated tester spots the biased score")
	cmd.Flags().StringArrayVar(&personas, "persona", nil, "Restrict to a persona (repeatable)")
	opts.bind(cmd)

	return cmd
}

func newReportCmd() *cobra.Command {
	var opts outputOptions

	cmd := &cobra.Command{
		Use:   "report [trials-file]",
		Short: "Compose an audit report from a recorded trial history",
		Long: `Compose an audit report from trials stored as JSON, CSV or XLSX.

JSON input is either an array of trials or a previously exported JSON report.
CSV and XLSX input use the columns:
  subject_id, score_a, score_b, label_a, label_b, user_choice, is_choice_correct, comment, recorded_at

Example: biasaudit report session.csv --format html --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			loaded, err := loadTrials(args[0])
			if err != nil {
				return err
			}
			rt.logger.Info("Loaded %d trials from %s", len(loaded), args[0])

			return runAudit(cmd.Context(), cmd.OutOrStdout(), rt, loaded, opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func newMetricsCmd() *cobra.Command {
	var byPersona bool

	cmd := &cobra.Command{
		Use:   "metrics [trials-file]",
		Short: "Print the metrics of a trial history as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			loaded, err := loadTrials(args[0])
			if err != nil {
				return err
			}
			if err := rt.service.RecordAll(cmd.Context(), loaded); err != nil {
				return err
			}

			var out interface{} = rt.service.Metrics()
			if byPersona {
				composer := report.NewComposer(report.Options{
					NullProbability:   rt.cfg.Report.NullProbability,
					SignificanceAlpha: rt.cfg.Report.SignificanceAlpha,
				})
				breakdown := make(map[string]interface{})
				for _, g := range trial.GroupByPersona(loaded) {
					breakdown[g.Persona] = composer.Metrics(g.Trials)
				}
				out = map[string]interface{}{
					"overall":  rt.service.Metrics(),
					"personas": breakdown,
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&byPersona, "by-persona", false, "Include metrics per biased persona")
	return cmd
}

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the simulated scorers and export formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCORER\tBIASED")
			fmt.Fprintf(w, "%s\t%s\n", testkit.UnbiasedLabel, color.GreenString("no"))
			for _, p := range testkit.Personas() {
				fmt.Fprintf(w, "%s\t%s\n", p.Name, color.RedString("yes"))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nExport formats: %s\n", strings.Join(export.DefaultRegistry().Formats(), ", "))
			return nil
		},
	}
}

// outputOptions are the export flags shared by simulate and report
type outputOptions struct {
	dir       string
	base      string
	formats   []string
	byPersona bool
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dir, "out", "", "Output directory (default: EXPORT_DIR/<session-id>)")
	cmd.Flags().StringVar(&o.base, "name", "audit-report", "Base file name of the exported files")
	cmd.Flags().StringArrayVar(&o.formats, "format", nil, "Export format (repeatable, default: all)")
	cmd.Flags().BoolVar(&o.byPersona, "by-persona", false, "Also export one report per biased persona")
}

func runAudit(ctx context.Context, w io.Writer, rt *runtime, trials []trial.Trial, opts outputOptions) error {
	if err := rt.service.RecordAll(ctx, trials); err != nil {
		return err
	}

	r, err := rt.service.GenerateReport(ctx)
	if err != nil {
		return err
	}

	dir := opts.dir
	if dir == "" {
		dir = filepath.Join(rt.cfg.Export.Dir, core.NewSessionID().String())
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	formats := opts.formats
	if len(formats) == 0 {
		formats = rt.registry.Formats()
	}

	if err := writeExports(ctx, rt, r, dir, opts.base, formats); err != nil {
		return err
	}

	if opts.byPersona {
		personaReports, err := rt.service.ComposeByPersona(ctx)
		if err != nil {
			return err
		}
		for _, pr := range personaReports {
			base := opts.base + "-" + slug(pr.Persona)
			if err := writeExports(ctx, rt, pr.Report, dir, base, formats); err != nil {
				return err
			}
		}
	}

	m := r.Metrics
	fmt.Fprintf(w, "Trials: %d  Accuracy: %.1f%%  p-value: %s  KL: %s  Risk: %s\n",
		m.Total, m.Accuracy*100, report.FormatMetric(m.PValue), report.FormatMetric(m.KLDivergence),
		tierColor(m.RiskTier).Sprint(r.Scorecard.Headline))
	fmt.Fprintf(w, "Fingerprint: %s\n", r.Fingerprint.Short())
	color.New(color.FgGreen).Fprintf(w, "Reports written to %s\n", dir)
	return nil
}

func tierColor(tier audit.RiskTier) *color.Color {
	switch tier {
	case audit.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case audit.RiskModerate:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func writeExports(ctx context.Context, rt *runtime, r *report.AuditReport, dir, base string, formats []string) error {
	for _, format := range formats {
		exporter, err := rt.registry.Get(format)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := rt.service.ExportReport(ctx, &buf, r, format); err != nil {
			if stderrors.Is(err, core.ErrInsufficientData) {
				rt.logger.Warn("Skipping %s: %v", exporter.Format(), err)
				continue
			}
			return err
		}

		path := filepath.Join(dir, export.FileName(base, exporter))
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		rt.logger.Debug("Wrote %s", path)
	}
	return nil
}

// loadTrials reads a trial history from JSON, CSV or XLSX
func loadTrials(path string) ([]trial.Trial, error) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return excel.NewTrialReader(path).ReadTrials()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var trials []trial.Trial
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Trials []trial.Trial `json:"trials"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		trials = doc.Trials
	} else if err := json.Unmarshal(trimmed, &trials); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, t := range trials {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("trial %d: %w", i+1, err)
		}
	}
	return trials, nil
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
