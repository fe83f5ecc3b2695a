package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

var (
	// Unfactored load effects (kN or kN-m)
	effectDead       float64
	effectLive       float64
	effectRoof       float64
	effectWind       float64
	effectEarthquake float64
	effectRain       float64

	// Options
	comboShowAll bool
	comboGravity bool
	comboLegacy  bool
	comboUnit    string
)

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Calculate a factored load effect using NSCP load combinations",
	Long: `Calculate the factored axial force (Pu) or moment (Mu) based on NSCP
2015 load combinations.

Provide unfactored effects from different load types and this command will
compute the factored effect for all applicable NSCP load combinations.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Column axial force from the floor load takedown
  gorcc combo --dead 850 --live 320

  # Moment with wind
  gorcc combo --dead 50 --live 30 --wind 20 --unit kN-m

  # Show all combinations
  gorcc combo --dead 850 --live 320 --all`,
	RunE: runCombo,
}

func init() {
	rootCmd.AddCommand(comboCmd)

	// Load effect flags
	comboCmd.Flags().Float64VarP(&effectDead, "dead", "d", 0, "Effect of dead load")
	comboCmd.Flags().Float64VarP(&effectLive, "live", "l", 0, "Effect of live load")
	comboCmd.Flags().Float64VarP(&effectRoof, "roof", "r", 0, "Effect of roof live load")
	comboCmd.Flags().Float64VarP(&effectWind, "wind", "w", 0, "Effect of wind load")
	comboCmd.Flags().Float64VarP(&effectEarthquake, "earthquake", "e", 0, "Effect of earthquake load")
	comboCmd.Flags().Float64VarP(&effectRain, "rain", "R", 0, "Effect of rain load")

	// Options
	comboCmd.Flags().BoolVarP(&comboShowAll, "all", "a", false, "Show all load combination results")
	comboCmd.Flags().BoolVarP(&comboGravity, "gravity", "g", false, "Use gravity combinations only (1.4D and 1.2D+1.6L)")
	comboCmd.Flags().BoolVar(&comboLegacy, "legacy", false, "Include the legacy 1.4D + 1.7L combination")
	comboCmd.Flags().StringVarP(&comboUnit, "unit", "u", "kN", "Unit of the load effects (kN or kN-m)")
}

func runCombo(cmd *cobra.Command, args []string) error {
	effects := nscp.LoadEffects{
		Dead:       effectDead,
		Live:       effectLive,
		Roof:       effectRoof,
		Wind:       effectWind,
		Earthquake: effectEarthquake,
		Rain:       effectRain,
	}

	// Check if any effect is provided
	if effects == (nscp.LoadEffects{}) {
		return fmt.Errorf("please provide at least one unfactored load effect\nUse 'gorcc combo --help' for usage information")
	}

	// Select which combinations to use
	combinations := nscp.LoadCombinations
	if comboGravity {
		combinations = nscp.GravityCombinations
	}
	if comboLegacy {
		combinations = append(append([]nscp.LoadCombination{}, combinations...), nscp.LegacyCombinations...)
	}

	// Print header
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 FACTORED LOAD CALCULATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	// Print input effects
	fmt.Printf("UNFACTORED EFFECTS (%s):\n", comboUnit)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range []struct {
		label string
		value float64
	}{
		{"Dead Load (D)", effects.Dead},
		{"Live Load (L)", effects.Live},
		{"Roof Live Load (Lr)", effects.Roof},
		{"Wind Load (W)", effects.Wind},
		{"Earthquake Load (E)", effects.Earthquake},
		{"Rain Load (R)", effects.Rain},
	} {
		if e.value != 0 {
			fmt.Fprintf(w, "  %s:\t%.2f\n", e.label, e.value)
		}
	}
	w.Flush()
	fmt.Println()

	// Calculate governing effect
	maxU, governingCombo := nscp.CalculateGoverning(effects, combinations)

	if comboShowAll {
		fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tU (%s)\n", comboUnit)
		fmt.Fprintf(w, "  ─\t───────────\t─────────\n")

		for _, combo := range combinations {
			u := combo.CalculateFactored(effects)
			marker := ""
			if combo.ID == governingCombo.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, u, marker)
		}
		w.Flush()
		fmt.Println()
	}

	// Print result
	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if governingCombo.ID == "" {
		fmt.Println("  No combination produces a positive factored effect.")
		fmt.Println()
		return nil
	}
	fmt.Printf("  Governing Combination: %s (%s)\n", governingCombo.ID, governingCombo.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  FACTORED EFFECT (U) = %.2f %s  \n", maxU, comboUnit)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()

	return nil
}
