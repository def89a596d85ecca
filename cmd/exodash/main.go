package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"exodash/app"
	"exodash/domain/run"
	"exodash/internal"
	"exodash/internal/config"
	"exodash/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "exodash",
		Short:         "Render the NASA exoplanet archive as a single-page dashboard",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRenderCmd(),
		newInspectCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// overrides holds flag values; a flag only wins when it was set explicitly
type overrides struct {
	out             string
	summary         string
	manifest        string
	skipLines       int
	methodThreshold int
	magBins         int
	tempBins        int
}

func (o overrides) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dashboard = o.out
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = o.summary
	}
	if flags.Changed("manifest") {
		cfg.Output.Manifest = o.manifest
	}
	if flags.Changed("skip-lines") {
		cfg.Input.SkipLines = o.skipLines
	}
	if flags.Changed("method-threshold") {
		cfg.Input.MethodThreshold = o.methodThreshold
	}
	if flags.Changed("mag-bins") {
		cfg.Aggregate.MagnitudeBins = o.magBins
	}
	if flags.Changed("temp-bins") {
		cfg.Aggregate.TemperatureBins = o.tempBins
	}
	return cfg.Validate()
}

func newRenderCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "render [input.csv]",
		Short: "Clean the archive export and write the dashboard",
		Long: `Clean a Planetary Systems CSV export, compute the aggregate views and
write all seven charts to one document. The format follows the --out
extension: .svg, .png, .pdf or .html.

Example: exodash render PS_2024.csv --out dashboard.html --summary summary.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&o.out, "out", "dashboard.svg", "Dashboard output path (.svg, .png, .pdf, .html)")
	cmd.Flags().StringVar(&o.summary, "summary", "", "Optional xlsx summary of the aggregate views")
	cmd.Flags().StringVar(&o.manifest, "manifest", "", "Optional JSON run manifest path")
	addCleaningFlags(cmd, &o)
	cmd.Flags().IntVar(&o.magBins, "mag-bins", 60, "Density chart bins along K magnitude")
	cmd.Flags().IntVar(&o.tempBins, "temp-bins", 40, "Density chart bins along stellar temperature")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "inspect [input.csv]",
		Short: "Print the cleaning report without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return runInspect(cmd.Context(), cfg, args[0])
		},
	}

	addCleaningFlags(cmd, &o)
	return cmd
}

func addCleaningFlags(cmd *cobra.Command, o *overrides) {
	cmd.Flags().IntVar(&o.skipLines, "skip-lines", 96, "Preamble lines before the header row")
	cmd.Flags().IntVar(&o.methodThreshold, "method-threshold", 20, "Keep methods with more rows than this")
}

func newService(cfg *config.Config) (*app.DashboardService, error) {
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	internal.DefaultLogger = logger
	run.CodeVersion = version

	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return c.Dashboard, nil
}

func runRender(ctx context.Context, cfg *config.Config, input string) error {
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	result, err := svc.Render(ctx, app.DashboardRequest{
		InputPath:    input,
		OutputPath:   cfg.Output.Dashboard,
		SummaryPath:  cfg.Output.Summary,
		ManifestPath: cfg.Output.Manifest,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n", result.RunID)
	fmt.Printf("Rows: %d raw, %d complete, %d retained\n",
		result.Report.RawRows, result.Report.CompleteRows, result.Report.RetainedRows)
	for _, out := range result.Manifest.Outputs {
		fmt.Printf("Wrote %s: %s\n", out.Kind, out.Path)
	}
	return nil
}

func runInspect(ctx context.Context, cfg *config.Config, input string) error {
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	report, err := svc.Inspect(ctx, input)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
