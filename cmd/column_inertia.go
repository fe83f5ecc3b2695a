package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/nscp"
)

var columnInertiaCmd = &cobra.Command{
	Use:   "inertia",
	Short: "Effective moment of inertia of a column for elastic analysis",
	Long: `Calculate the moments of inertia of a rectangular column at factored
load per NSCP 2015 Table 406.6.3.1.1(b):

  I = (0.80 + 25Ast/Ag)(1 - Mu/(Pu·h) - 0.5Pu/Po)Ig,  0.35Ig <= I <= 0.875Ig

The ratios I/Ig are the stiffness modifiers to assign in the analysis
model.

Examples:
  gorcc column inertia --c22 650 --c33 1200 --fc 50 --fy 420 --rho 0.02 \
      --pu 2633 --mu22 1132 --mu33 1854
  gorcc column inertia --file c1.yaml
  gorcc column inertia -f c1.yaml --flip-axial --abs-moments`,
	RunE: runColumnInertia,
}

func init() {
	columnCmd.AddCommand(columnInertiaCmd)
	addColumnFlags(columnInertiaCmd)
}

func runColumnInertia(cmd *cobra.Command, args []string) error {
	in, err := columnInput()
	if err != nil {
		return err
	}

	r, err := column.EffectiveInertia(in.Material, in.Section, in.Load)
	if err != nil {
		return err
	}

	// Print results
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("      COLUMN EFFECTIVE MOMENT OF INERTIA - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if in.Name != "" {
		fmt.Printf("  Column: %s\n\n", in.Name)
	}

	printColumnInput(in)

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ag:\t%.0f mm²\n", r.Ag)
	fmt.Fprintf(w, "  Ast:\t%.0f mm²\n", r.Ast)
	fmt.Fprintf(w, "  Po = 0.85f'c(Ag - Ast) + fyAst:\t%.2f kN\n", r.Po/1e3)
	fmt.Fprintf(w, "  Ec = 4700√f'c:\t%.0f MPa\n", nscp.Ec(in.Material.Fc))
	w.Flush()
	fmt.Println()

	fmt.Println("MOMENT OF INERTIA (Table 406.6.3.1.1(b)):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axis\tIg (mm⁴)\tI (mm⁴)\tI/Ig\n")
	fmt.Fprintf(w, "  ────\t────────\t───────\t────\n")
	fmt.Fprintf(w, "  %s\t%.4e\t%.4e\t%.4f%s\n", column.Axis22, r.Ig22, r.I22, r.Ratio22, boundMark(r.Ratio22))
	fmt.Fprintf(w, "  %s\t%.4e\t%.4e\t%.4f%s\n", column.Axis33, r.Ig33, r.I33, r.Ratio33, boundMark(r.Ratio33))
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("STIFFNESS MODIFIERS", []string{
		fmt.Sprintf("I22 = %.3f Ig22", r.Ratio22),
		fmt.Sprintf("I33 = %.3f Ig33", r.Ratio33),
	}))
	fmt.Println()

	return nil
}

func boundMark(ratio float64) string {
	switch {
	case math.Abs(ratio-nscp.ColumnInertiaMax) < 1e-9:
		return "  (upper limit)"
	case math.Abs(ratio-nscp.ColumnInertiaMin) < 1e-9:
		return "  (lower limit)"
	}
	return ""
}

// printColumnInput prints the material, section and factored load
func printColumnInput(in *columnFile) {
	fmt.Println("INPUT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  f'c:\t%.1f MPa\n", in.Material.Fc)
	fmt.Fprintf(w, "  fy:\t%.1f MPa\n", in.Material.Fy)
	fmt.Fprintf(w, "  Section (c22 × c33):\t%.0f × %.0f mm\n", in.Section.C22, in.Section.C33)
	fmt.Fprintf(w, "  ρg:\t%.4f\n", in.Section.SteelRatio)
	fmt.Fprintf(w, "  Pu:\t%.2f kN\n", in.Load.Pu/1e3)
	fmt.Fprintf(w, "  Pu (sustained):\t%.2f kN\n", in.Load.PuSustained/1e3)
	fmt.Fprintf(w, "  Mu22:\t%.2f kN-m\n", in.Load.Mu22/1e6)
	fmt.Fprintf(w, "  Mu33:\t%.2f kN-m\n", in.Load.Mu33/1e6)
	w.Flush()
	fmt.Println()
}
