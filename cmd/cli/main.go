// Command cli analyzes Prometheus metric dumps from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"promcorr/adapters/excel"
	"promcorr/adapters/promread"
	"promcorr/app"
	"promcorr/domain/series"
	"promcorr/internal"
	"promcorr/internal/config"
	"promcorr/models"
	"promcorr/report"
)

func main() {
	godotenv.Load()
	log := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	source, err := promread.NewSource(cfg.Data.CacheSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	pairs := app.NewPairService(source, nil, log)

	var (
		dataDir  string
		outDir   string
		numFiles int
		host     string
	)

	root := &cobra.Command{
		Use:           "promcorr",
		Short:         "Correlation analysis over Prometheus metric dumps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", cfg.Data.Dir, "directory holding per-metric dump directories")
	root.PersistentFlags().StringVar(&outDir, "out", cfg.Output.Dir, "output directory for reports")
	root.PersistentFlags().IntVar(&numFiles, "num-files", cfg.Data.NumFiles, "number of dump files to load per metric (0 = all)")
	root.PersistentFlags().StringVar(&host, "host", "", "filter samples to instances containing this substring")

	var (
		cadence    time.Duration
		tolerance  time.Duration
		maxLag     int
		window     int
		minPeriods int
		noRate     bool
		writeXLSX  bool
	)
	analyze := &cobra.Command{
		Use:   "analyze <metric1> <metric2>",
		Short: "Correlate two metrics",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.PairRequest{
				Dir1:               filepath.Join(dataDir, args[0]),
				Dir2:               filepath.Join(dataDir, args[1]),
				Metric1:            args[0],
				Metric2:            args[1],
				NumFiles:           numFiles,
				Host:               host,
				Cadence:            cadence,
				Tolerance:          tolerance,
				MaxLag:             maxLag,
				Window:             window,
				MinPeriods:         minPeriods,
				SkipRateConversion: noRate,
			}
			run, err := pairs.Analyze(context.Background(), req)
			if err != nil {
				return err
			}
			dir := filepath.Join(outDir, fmt.Sprintf("%s_vs_%s", args[0], args[1]))
			if err := report.WritePairRun(run, dir); err != nil {
				return err
			}
			if writeXLSX {
				if err := excel.NewReportWriter().WritePairRun(run, dir); err != nil {
					return err
				}
			}
			printRun(run)
			fmt.Printf("Report written to %s\n", dir)
			return nil
		},
	}
	analyze.Flags().DurationVar(&cadence, "cadence", 0, "sampling grid (default inferred from the data)")
	analyze.Flags().DurationVar(&tolerance, "tolerance", 0, "alignment tolerance (default 2x cadence)")
	analyze.Flags().IntVar(&maxLag, "max-lag", 0, "lag sweep half-width in grid steps (default 20)")
	analyze.Flags().IntVar(&window, "window", 0, "rolling correlation window in rows (default 30)")
	analyze.Flags().IntVar(&minPeriods, "min-periods", 0, "minimum rows per rolling window (default max(3, window/3))")
	analyze.Flags().BoolVar(&noRate, "no-rate", false, "skip cumulative counter to rate conversion")
	analyze.Flags().BoolVar(&writeXLSX, "excel", false, "also write an xlsx workbook")

	var sweepPath string
	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Correlate every pair in a TOML sweep config",
		RunE: func(cmd *cobra.Command, args []string) error {
			sweepCfg, err := config.LoadSweep(sweepPath)
			if err != nil {
				return err
			}
			if host != "" {
				sweepCfg.Host = host
			}
			if numFiles > 0 {
				sweepCfg.NumFiles = numFiles
			}
			runs, err := app.NewSweepService(pairs, log).Run(context.Background(), sweepCfg, dataDir)
			if err != nil {
				return err
			}
			for _, run := range runs {
				dir := filepath.Join(outDir, fmt.Sprintf("%s_vs_%s", run.Metric1, run.Metric2))
				if err := report.WritePairRun(run, dir); err != nil {
					return err
				}
				printRun(run)
			}
			fmt.Printf("%d reports written to %s\n", len(runs), outDir)
			return nil
		},
	}
	sweep.Flags().StringVar(&sweepPath, "config", "sweep.toml", "sweep configuration file")

	efficiency := &cobra.Command{
		Use:   "efficiency <load-metric> <power-metric>",
		Short: "Analyze load per unit of power",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.PairRequest{
				Dir1:     filepath.Join(dataDir, args[0]),
				Dir2:     filepath.Join(dataDir, args[1]),
				Metric1:  args[0],
				Metric2:  args[1],
				NumFiles: numFiles,
				Host:     host,
			}
			run, err := pairs.Analyze(context.Background(), req)
			if err != nil {
				return err
			}
			rep := app.NewEfficiencyService(log).Analyze(run.Aligned)
			if rep == nil {
				return fmt.Errorf("insufficient overlapping data for efficiency analysis (%d rows)", run.AlignedRows)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, "efficiency_report.md")
			if err := os.WriteFile(path, []byte(report.EfficiencyMarkdown(rep)), 0o644); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		},
	}

	eda := &cobra.Command{
		Use:   "eda <metric>...",
		Short: "Exploratory summary over a set of metrics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var metrics []series.Series
			for _, name := range args {
				s, err := source.LoadMetricDir(filepath.Join(dataDir, name), numFiles, name, host)
				if err != nil {
					return err
				}
				metrics = append(metrics, s)
			}
			rep := app.NewEDAService(log).Report(metrics)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, "eda_report.md")
			if err := os.WriteFile(path, []byte(report.EDAMarkdown(rep)), 0o644); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		},
	}

	instances := &cobra.Command{
		Use:   "instances <dump-file>",
		Short: "List the instances present in one dump file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := source.ListInstances(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	root.AddCommand(analyze, sweep, efficiency, eda, instances)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printRun(run *models.PairRun) {
	fmt.Printf("%s vs %s: %d aligned rows at cadence %s\n", run.Metric1, run.Metric2, run.AlignedRows, run.Cadence)
	if run.Status == models.StatusInsufficientData {
		fmt.Println("  insufficient overlapping data")
		return
	}
	if c := run.Correlation; c != nil {
		fmt.Printf("  Pearson r = %.4f (p = %.2e), Spearman rho = %.4f (p = %.2e)\n",
			c.PearsonR, c.PearsonP, c.SpearmanR, c.SpearmanP)
		fmt.Printf("  %s %s correlation\n", report.Strength(c.PearsonR), report.Direction(c.PearsonR))
	}
	if l := run.Lag; l != nil {
		fmt.Printf("  best lag %d (r = %.4f)\n", l.BestLag, l.BestR)
	}
}
