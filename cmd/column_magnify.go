package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/nscp"
)

var (
	magLu22      float64
	magLu33      float64
	magK22       float64
	magK33       float64
	magM1_22     float64
	magM2_22     float64
	magM1_33     float64
	magM2_33     float64
	magShowCurve bool
)

// curveCap limits δns plotted on the slenderness curve
const curveCap = 5.0

var columnMagnifyCmd = &cobra.Command{
	Use:   "magnify",
	Short: "Nonsway moment magnifier of a slender column",
	Long: `Calculate the nonsway moment magnifier δns about both axes per
NSCP 2015 Section 406.6.4.5:

  δns = Cm / (1 - Pu/0.75Pc) >= 1.0,  Pc = π²(EI)eff/(k·lu)²

(EI)eff is evaluated with each expression of Section 406.6.4.4.4:
  (a) 0.4EcIg/(1 + βdns)
  (b) (0.2EcIg + EsIse)/(1 + βdns)
  (c) EcI/(1 + βdns), I from Table 406.6.3.1.1(b)

Cm = 0.6 + 0.4M1/M2 from the end moments, M1/M2 positive in single
curvature. Without end moments Cm = 1.0.

Examples:
  gorcc column magnify --c22 250 --c33 800 --fc 32 --fy 420 --rho 0.0141 \
      --bars33 7 --bars22 2 --bar 16 --pu 1385 --pus 1150 --mu33 300 \
      --lu22 3000 --lu33 3000
  gorcc column magnify -f c1.yaml --curve`,
	RunE: runColumnMagnify,
}

func init() {
	columnCmd.AddCommand(columnMagnifyCmd)
	addColumnFlags(columnMagnifyCmd)

	// Lengths
	columnMagnifyCmd.Flags().Float64Var(&magLu22, "lu22", 0, "Unsupported length for bending about 2-2 (mm)")
	columnMagnifyCmd.Flags().Float64Var(&magLu33, "lu33", 0, "Unsupported length for bending about 3-3 (mm)")
	columnMagnifyCmd.Flags().Float64Var(&magK22, "k22", 1.0, "Effective length factor about 2-2")
	columnMagnifyCmd.Flags().Float64Var(&magK33, "k33", 1.0, "Effective length factor about 3-3")

	// End moments for Cm
	columnMagnifyCmd.Flags().Float64Var(&magM1_22, "m1-22", 0, "Smaller end moment about 2-2 (kN-m)")
	columnMagnifyCmd.Flags().Float64Var(&magM2_22, "m2-22", 0, "Larger end moment about 2-2 (kN-m)")
	columnMagnifyCmd.Flags().Float64Var(&magM1_33, "m1-33", 0, "Smaller end moment about 3-3 (kN-m)")
	columnMagnifyCmd.Flags().Float64Var(&magM2_33, "m2-33", 0, "Larger end moment about 3-3 (kN-m)")

	columnMagnifyCmd.Flags().BoolVar(&magShowCurve, "curve", false, "Plot δns against unsupported length")
}

func runColumnMagnify(cmd *cobra.Command, args []string) error {
	in, err := columnInput()
	if err != nil {
		return err
	}
	if colFile == "" {
		in.Lengths = column.Lengths{Lu22: magLu22, Lu33: magLu33, K22: magK22, K33: magK33}
		in.EndMoments = endMoments{M1_22: magM1_22, M2_22: magM2_22, M1_33: magM1_33, M2_33: magM2_33}
	}

	cm22 := nscp.Cm(in.EndMoments.M1_22, in.EndMoments.M2_22)
	cm33 := nscp.Cm(in.EndMoments.M1_33, in.EndMoments.M2_33)

	r22, err := column.Magnify(column.Axis22, in.Material, in.Section, in.Lengths, in.Load, cm22)
	if err != nil {
		return err
	}
	r33, err := column.Magnify(column.Axis33, in.Material, in.Section, in.Lengths, in.Load, cm33)
	if err != nil {
		return err
	}

	// Print results
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("        NONSWAY MOMENT MAGNIFICATION - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if in.Name != "" {
		fmt.Printf("  Column: %s\n\n", in.Name)
	}

	printColumnInput(in)

	for _, r := range []*column.Magnification{r22, r33} {
		printMagnification(r)
	}

	mu22 := in.Load.Mu22 / 1e6
	mu33 := in.Load.Mu33 / 1e6
	lines := []string{
		fmt.Sprintf("δns 2-2 = %s   Mc22 = %s kN-m", formatDelta(r22.Governing()), formatMoment(mu22, r22.Governing())),
		fmt.Sprintf("δns 3-3 = %s   Mc33 = %s kN-m", formatDelta(r33.Governing()), formatMoment(mu33, r33.Governing())),
	}
	if math.IsInf(r22.Governing(), 1) || math.IsInf(r33.Governing(), 1) {
		lines = append(lines, "UNSTABLE: Pu >= 0.75Pc, revise the section")
	}
	fmt.Print(diagram.DrawSummaryBox("MOMENT MAGNIFIER", lines))
	fmt.Println()

	if magShowCurve {
		curve, err := slendernessCurve(in, cm22, cm33)
		if err != nil {
			return err
		}
		fmt.Println("SLENDERNESS CURVE:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(curve)
		fmt.Println()
	}

	return nil
}

func printMagnification(r *column.Magnification) {
	fmt.Printf("AXIS %s:\n", r.Axis)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Cm:\t%.3f\n", r.Cm)
	fmt.Fprintf(w, "  βdns:\t%.3f\n", r.BetaDns)
	fmt.Fprintf(w, "  Ig:\t%.4e mm⁴\n", r.Ig)
	fmt.Fprintf(w, "  Ise:\t%.4e mm⁴\n", r.Ise)
	fmt.Fprintf(w, "  I:\t%.4e mm⁴\n", r.I)
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  (EI)eff\tEI (N-mm²)\tPc (kN)\tδns\n")
	fmt.Fprintf(w, "  ───────\t──────────\t───────\t───\n")
	governing := r.Governing()
	for _, row := range []struct {
		name string
		res  column.StiffnessResult
	}{{"(a)", r.EqA}, {"(b)", r.EqB}, {"(c)", r.EqC}} {
		marker := ""
		if row.res.Delta == governing && governing > 1 {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%.4e\t%.2f\t%s%s\n", row.name, row.res.EI, row.res.Pc/1e3, formatDelta(row.res.Delta), marker)
	}
	w.Flush()
	fmt.Println()
}

// slendernessCurve plots the governing δns about both axes for unsupported
// lengths from half to twice the given ones
func slendernessCurve(in *columnFile, cm22, cm33 float64) (string, error) {
	const points = 50
	series := make([][]float64, 2)
	for i := 0; i < points; i++ {
		f := 0.5 + 1.5*float64(i)/float64(points-1)
		l := in.Lengths
		l.Lu22 *= f
		l.Lu33 *= f

		for j, axis := range []column.Axis{column.Axis22, column.Axis33} {
			cm := cm22
			if axis == column.Axis33 {
				cm = cm33
			}
			r, err := column.Magnify(axis, in.Material, in.Section, l, in.Load, cm)
			if err != nil {
				return "", err
			}
			series[j] = append(series[j], math.Min(r.Governing(), curveCap))
		}
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.LowerBound(1),
		asciigraph.UpperBound(curveCap),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("δns vs 0.5lu…2lu (blue 2-2, red 3-3, capped at %.0f)", curveCap)),
	), nil
}

func formatDelta(d float64) string {
	if math.IsInf(d, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.3f", d)
}

func formatMoment(mu, delta float64) string {
	if math.IsInf(delta, 1) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", mu*delta)
}
