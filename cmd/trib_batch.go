package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/tributary"
)

var (
	tribBatchLoads   string
	tribBatchExport  bool
	tribBatchTimeout time.Duration
)

var tribBatchCmd = &cobra.Command{
	Use:   "batch <floor>...",
	Short: "Partition several floors concurrently",
	Long: `Partition the floors given as arguments with the same load table and
report the load per support of each floor.

Loads of supports sharing a label on different floors are accumulated,
which gives the column load takedown when the floors are stacked with
their columns in the same order.

Examples:
  gorcc trib batch level2.json level3.json roof.json --loads loads.yaml
  gorcc trib batch floors/*.json -l loads.yaml --workers 8 --combo 2
  gorcc trib batch floors/*.geojson -l loads.yaml --export --output-dir ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTribBatch,
}

func init() {
	tribCmd.AddCommand(tribBatchCmd)

	addLoadFlags(tribBatchCmd, &tribBatchLoads)

	d := config.DefaultConfig()
	tribBatchCmd.Flags().Int("workers", d.Workers, "Number of floors partitioned concurrently")
	tribBatchCmd.Flags().String("output-dir", d.OutputDir, "Output directory for exported reports")
	tribBatchCmd.Flags().BoolVar(&tribBatchExport, "export", false, "Export a workbook and GeoJSON file per floor")
	tribBatchCmd.Flags().DurationVar(&tribBatchTimeout, "timeout", 10*time.Minute, "Total timeout for batch processing")
}

func runTribBatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := tribSettings(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), tribBatchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  gorcc Batch Load Takedown\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Floors:       %d\n", len(args))
	fmt.Fprintf(os.Stderr, "  Load table:   %s\n", tribBatchLoads)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Workers)
	if tribBatchExport {
		fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.OutputDir)
	}
	fmt.Fprintf(os.Stderr, "\n")

	table, err := tributary.LoadTableFromFile(tribBatchLoads)
	if err != nil {
		return fmt.Errorf("error loading load table: %w", err)
	}
	cases := table.CaseNames()
	factors, err := cfg.Factors(cases)
	if err != nil {
		return err
	}

	floors := make([]*tributary.FloorDefinition, len(args))
	for i, path := range args {
		floor, err := tributary.LoadFloorFromFile(path)
		if err != nil {
			return fmt.Errorf("error loading floor %s: %w", path, err)
		}
		floors[i] = floor
	}

	start := time.Now()
	results, err := tributary.NewPartitioner(logger).PartitionAll(ctx, floors, table, cfg.WallSegmentLength, cfg.Workers)
	if err != nil {
		return err
	}
	logger.Info("batch complete", zap.Int("floors", len(results)), zap.Duration("elapsed", time.Since(start)))

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          BATCH LOAD TAKEDOWN - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Combination: %s\n", combinationLabel(cfg, cases, factors))
	fmt.Println()

	// Per floor summary
	fmt.Println("FLOORS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Floor\tSupports\tArea (m²)\tLoad (kN)\n")
	fmt.Fprintf(w, "  ─────\t────────\t─────────\t─────────\n")

	var labels []string
	accumulated := make(map[string]float64)
	var grandTotal float64
	for _, r := range results {
		var area, load float64
		for _, a := range r.Areas {
			combined, err := a.CombinedLoad(factors, cfg.Scale)
			if err != nil {
				return err
			}
			area += a.AreaM2()
			load += combined
			if _, ok := accumulated[a.Support.Label]; !ok {
				labels = append(labels, a.Support.Label)
			}
			accumulated[a.Support.Label] += combined
		}
		grandTotal += load
		fmt.Fprintf(w, "  %s\t%d\t%.2f\t%.2f\n", r.Floor.Name, len(r.Areas), area, load)
	}
	w.Flush()
	fmt.Println()

	// Takedown by support label
	fmt.Println("ACCUMULATED SUPPORT LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Support\tLoad (kN)\n")
	fmt.Fprintf(w, "  ───────\t─────────\n")
	for _, label := range labels {
		fmt.Fprintf(w, "  %s\t%.2f\n", label, accumulated[label])
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  Total: %.2f kN\n", grandTotal)
	fmt.Println()

	if tribBatchExport {
		for _, r := range results {
			base := reportBaseName(r.Floor.Name)
			if err := exportReports(cfg, r.Areas, table, factors, base+".xlsx", base+".geojson"); err != nil {
				return fmt.Errorf("floor %q: %w", r.Floor.Name, err)
			}
		}
	}

	return nil
}

// reportBaseName turns a floor name into a file name
func reportBaseName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "floor"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
