package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/report"
	"github.com/alexiusacademia/gorcc/internal/tributary"
)

var (
	tribRunFloor      string
	tribRunLoads      string
	tribRunShowMap    bool
	tribRunMapWidth   int
	tribRunExportFile string
	tribRunWorkbook   string
	tribRunGeoJSON    string
)

var tribRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Partition a floor and take down its loads to the supports",
	Long: `Partition the slab of one floor into tributary areas and report the
area, occupancy and load collected by each column and wall.

The floor is read from a JSON file or a GeoJSON FeatureCollection whose
features carry a "role" property (slab, opening, column, wall, zone).

Examples:
  gorcc trib run --floor level2.json --loads loads.yaml
  gorcc trib run -f level2.geojson -l loads.yaml --combo 2 --map
  gorcc trib run -f level2.json -l loads.yaml --factors 1.4,1.7 --scale 5 -o level2.png
  gorcc trib run -f level2.json -l loads.yaml --xlsx level2.xlsx --geojson areas.geojson`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if tribRunMapWidth < 10 {
			return fmt.Errorf("--width must be at least 10")
		}
		return nil
	},
	RunE: runTribRun,
}

func init() {
	tribCmd.AddCommand(tribRunCmd)

	tribRunCmd.Flags().StringVarP(&tribRunFloor, "floor", "f", "", "Path to floor JSON or GeoJSON file [required]")
	_ = tribRunCmd.MarkFlagRequired("floor")
	addLoadFlags(tribRunCmd, &tribRunLoads)

	// Diagram options
	tribRunCmd.Flags().BoolVar(&tribRunShowMap, "map", false, "Show ASCII tributary area map")
	tribRunCmd.Flags().IntVar(&tribRunMapWidth, "width", 60, "Width of the ASCII map in characters")
	tribRunCmd.Flags().StringVarP(&tribRunExportFile, "output", "o", "", "Export load map to file (png, svg, pdf)")

	// Reports
	tribRunCmd.Flags().StringVar(&tribRunWorkbook, "xlsx", "", "Export the load takedown to an Excel workbook")
	tribRunCmd.Flags().StringVar(&tribRunGeoJSON, "geojson", "", "Export tributary regions to a GeoJSON file")
}

func runTribRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := tribSettings(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	floor, err := tributary.LoadFloorFromFile(tribRunFloor)
	if err != nil {
		return fmt.Errorf("error loading floor: %w", err)
	}
	table, err := tributary.LoadTableFromFile(tribRunLoads)
	if err != nil {
		return fmt.Errorf("error loading load table: %w", err)
	}
	cases := table.CaseNames()
	factors, err := cfg.Factors(cases)
	if err != nil {
		return err
	}

	logger.Debug("partitioning floor",
		zap.String("floor", floor.Name),
		zap.Int("columns", len(floor.Columns)),
		zap.Int("walls", len(floor.Walls)),
		zap.Float64("wall_segment", cfg.WallSegmentLength))

	areas, err := tributary.NewPartitioner(logger).Partition(floor, table, cfg.WallSegmentLength)
	if err != nil {
		return err
	}

	// Print results
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("        TRIBUTARY AREA LOAD TAKEDOWN - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if floor.Name != "" {
		fmt.Printf("  Floor: %s\n", floor.Name)
	}
	fmt.Println()

	fmt.Println("FLOOR GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Slab Area (net):\t%.2f m²\n", floor.NetArea()/tributary.MM2PerM2)
	fmt.Fprintf(w, "  Openings:\t%d\n", len(floor.SlabOpenings))
	fmt.Fprintf(w, "  Columns:\t%d\n", len(floor.Columns))
	fmt.Fprintf(w, "  Walls:\t%d\n", len(floor.Walls))
	fmt.Fprintf(w, "  Occupancy Zones:\t%d\n", len(floor.Zones))
	fmt.Fprintf(w, "  Wall Segment:\t%.0f mm\n", cfg.WallSegmentLength)
	w.Flush()
	fmt.Println()

	printLoadCases(table, factors, cfg)

	fmt.Println("TRIBUTARY AREAS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	totalArea, totalLoad, err := printSupportTable(areas, table, factors, cfg.Scale)
	if err != nil {
		return err
	}
	fmt.Println()

	if tribRunShowMap || tribRunExportFile != "" {
		data, err := report.LoadMap(floor, areas, factors, cfg.Scale)
		if err != nil {
			return err
		}
		if tribRunShowMap {
			fmt.Println("TRIBUTARY AREA MAP:")
			fmt.Println("───────────────────────────────────────────────────────────────")
			fmt.Print(diagram.DrawASCIILoadMap(data, tribRunMapWidth))
			fmt.Println()
		}
		if tribRunExportFile != "" {
			if err := diagram.ExportLoadMap(data, outputPath(cfg, tribRunExportFile)); err != nil {
				return fmt.Errorf("error exporting load map: %w", err)
			}
			fmt.Printf("  ✓ Load map exported to: %s\n\n", outputPath(cfg, tribRunExportFile))
		}
	}

	if err := exportReports(cfg, areas, table, factors, tribRunWorkbook, tribRunGeoJSON); err != nil {
		return err
	}

	fmt.Print(diagram.DrawSummaryBox("LOAD TAKEDOWN", []string{
		fmt.Sprintf("Supports:        %d", len(areas)),
		fmt.Sprintf("Tributary Area:  %.2f m²", totalArea),
		fmt.Sprintf("Total Load:      %.2f kN", totalLoad),
	}))
	fmt.Println()

	return nil
}

// printLoadCases prints the load table and the factor of each load case
func printLoadCases(table tributary.LoadTable, factors []float64, cfg config.Config) {
	cases := table.CaseNames()

	fmt.Println("FLOOR LOADS (kPa):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Category")
	for _, c := range cases {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for _, cat := range table.CategoryNames() {
		fmt.Fprintf(w, "  %s", cat)
		for _, v := range table.Categories[cat] {
			fmt.Fprintf(w, "\t%.2f", v)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  Factor")
	for _, f := range factors {
		fmt.Fprintf(w, "\t%.2f", f)
	}
	fmt.Fprintln(w)
	w.Flush()
	fmt.Println()
	fmt.Printf("  Combination: %s\n", combinationLabel(cfg, cases, factors))
	if cfg.Scale != 1 {
		fmt.Printf("  Scale: ×%g\n", cfg.Scale)
	}
	fmt.Println()
}

// exportReports writes the optional workbook and GeoJSON outputs
func exportReports(cfg config.Config, areas []*tributary.ColumnArea, table tributary.LoadTable, factors []float64, workbook, geoJSON string) error {
	if workbook != "" {
		path := outputPath(cfg, workbook)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := report.WriteWorkbook(areas, table, factors, cfg.Scale, path); err != nil {
			return fmt.Errorf("error exporting workbook: %w", err)
		}
		fmt.Printf("  ✓ Workbook exported to: %s\n\n", path)
	}

	if geoJSON != "" {
		path := outputPath(cfg, geoJSON)
		fc, err := report.FeatureCollection(areas, table, factors, cfg.Scale)
		if err != nil {
			return err
		}
		data, err := fc.MarshalJSON()
		if err != nil {
			return fmt.Errorf("error encoding GeoJSON: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("error exporting GeoJSON: %w", err)
		}
		fmt.Printf("  ✓ Tributary regions exported to: %s\n\n", path)
	}
	return nil
}

// outputPath places relative file names in the configured output directory
func outputPath(cfg config.Config, name string) string {
	if filepath.IsAbs(name) || cfg.OutputDir == "" || cfg.OutputDir == "." {
		return name
	}
	return filepath.Join(cfg.OutputDir, name)
}
