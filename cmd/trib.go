package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/alexiusacademia/gorcc/internal/tributary"
)

// tribFlagKeys maps tributary command flags to config keys
var tribFlagKeys = map[string]string{
	"segment":    "wall_segment_length",
	"combo":      "combination",
	"factors":    "load_factors",
	"scale":      "scale",
	"workers":    "workers",
	"output-dir": "output_dir",
}

var tribCmd = &cobra.Command{
	Use:   "trib",
	Short: "Tributary area partitioning of floor slabs",
	Long: `Partition a floor slab into the tributary areas of its columns and
walls and take down the floor loads to each support.

Every point of the slab is assigned to the nearest support. Columns are
represented by their vertices and walls by points along their boundary,
spaced no further apart than the wall segment length.

Subcommands:
  run    - Partition one floor and report the load per support
  batch  - Partition several floors concurrently

Example floor JSON file (mm):
{
  "name": "Level 2",
  "slab_outline": [[0,0],[12000,0],[12000,9000],[0,9000]],
  "slab_openings": [[[5000,4000],[6000,4000],[6000,5000],[5000,5000]]],
  "columns": [
    [[2800,2800],[3200,2800],[3200,3200],[2800,3200]]
  ],
  "walls": [],
  "light_occupancy": [[0,0],[6000,0],[6000,9000],[0,9000]],
  "heavy_occupancy": [[6000,0],[12000,0],[12000,9000],[6000,9000]]
}

Example load table YAML file (kN/m² per load case):
light_occupancy:
  dead: 4.8
  live: 1.9
heavy_occupancy:
  dead: 6.0
  live: 4.8`,
}

func init() {
	rootCmd.AddCommand(tribCmd)
}

// addLoadFlags registers the flags shared by the tributary commands
func addLoadFlags(cmd *cobra.Command, loads *string) {
	cmd.Flags().StringVarP(loads, "loads", "l", "", "Path to load table YAML or JSON file [required]")
	_ = cmd.MarkFlagRequired("loads")

	d := config.DefaultConfig()
	cmd.Flags().Float64("segment", d.WallSegmentLength, "Maximum seed spacing along wall boundaries (mm)")
	cmd.Flags().String("combo", d.Combination, "NSCP load combination ID for combined loads (e.g. 2)")
	cmd.Flags().StringSlice("factors", nil, "Load factor per load case, in load table order (e.g. 1.2,1.6)")
	cmd.Flags().Float64("scale", d.Scale, "Multiplier on combined loads (e.g. number of floors)")
}

// tribSettings loads the config for a tributary command. Explicit --factors
// take precedence over a configured combination.
func tribSettings(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	if err := bindFlags(cmd, tribFlagKeys); err != nil {
		return config.Config{}, nil, err
	}
	cfg, logger, err := loadSettings()
	if err != nil {
		return config.Config{}, nil, err
	}
	if cmd.Flags().Changed("factors") && !cmd.Flags().Changed("combo") {
		cfg.Combination = ""
	}
	return cfg, logger, nil
}

// combinationLabel describes the factors used for combined loads
func combinationLabel(cfg config.Config, cases []string, factors []float64) string {
	if cfg.Combination != "" {
		if combo, ok := nscp.FindCombination(cfg.Combination); ok {
			return fmt.Sprintf("NSCP %s: %s", combo.ID, combo.Description)
		}
	}
	terms := make([]string, len(cases))
	for i, c := range cases {
		terms[i] = fmt.Sprintf("%g·%s", factors[i], c)
	}
	return strings.Join(terms, " + ")
}

// printSupportTable prints one row per support with occupancy fractions,
// loads per case and the combined load
func printSupportTable(areas []*tributary.ColumnArea, table tributary.LoadTable, factors []float64, scale float64) (totalArea, totalLoad float64, err error) {
	categories := table.CategoryNames()
	cases := table.CaseNames()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"  Support", "Kind", "Area (m²)"}
	rule := []string{"  ───────", "────", "─────────"}
	for _, c := range categories {
		header = append(header, c)
		rule = append(rule, strings.Repeat("─", len(c)))
	}
	for _, c := range cases {
		header = append(header, c+" (kN)")
		rule = append(rule, strings.Repeat("─", len(c)+5))
	}
	header = append(header, "Combined (kN)")
	rule = append(rule, "─────────────")
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(w, strings.Join(rule, "\t")+"\t")

	for _, a := range areas {
		combined, err := a.CombinedLoad(factors, scale)
		if err != nil {
			return 0, 0, err
		}
		row := []string{"  " + a.Support.Label, a.Support.Kind.String(), fmt.Sprintf("%.2f", a.AreaM2())}
		for _, c := range categories {
			row = append(row, fmt.Sprintf("%.0f%%", 100*a.Occupancies[c]))
		}
		for i := range cases {
			v := 0.0
			if i < len(a.Loads) {
				v = a.Loads[i]
			}
			row = append(row, fmt.Sprintf("%.2f", v))
		}
		row = append(row, fmt.Sprintf("%.2f", combined))
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")

		totalArea += a.AreaM2()
		totalLoad += combined
	}
	if err := w.Flush(); err != nil {
		return 0, 0, err
	}
	return totalArea, totalLoad, nil
}
