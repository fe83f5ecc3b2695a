package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcc/internal/column"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Column stiffness and slenderness per NSCP 2015",
	Long: `Stiffness and slenderness calculations for rectangular tied columns.

Subcommands:
  inertia  - Effective moment of inertia for elastic analysis
  magnify  - Nonsway moment magnifier δns

The column can be described with flags or in a YAML/JSON file. Forces are
in kN and moments in kN-m, lengths in mm.

Example YAML file structure:
name: C1 ground floor
material:
  fc: 28
  fy: 415
section:
  c22: 400
  c33: 600
  clear_cover: 40
  tie_diameter: 10
  steel_ratio: 0.015
  bars_along_c33: 4
  bars_along_c22: 3
  bar_diameter: 20
lengths:
  lu22: 3000
  lu33: 3000
  k22: 1.0
  k33: 1.0
load:
  pu: 2500
  pu_sustained: 1500
  mu22: 40
  mu33: 120
end_moments:
  m1_22: 20
  m2_22: 40
  m1_33: -60
  m2_33: 120`,
}

func init() {
	rootCmd.AddCommand(columnCmd)
}

// columnFile is the column description read by --file
type columnFile struct {
	Name       string            `yaml:"name"`
	Material   column.Material   `yaml:"material"`
	Section    column.Dimensions `yaml:"section"`
	Lengths    column.Lengths    `yaml:"lengths"`
	Load       column.Load       `yaml:"load"`
	EndMoments endMoments        `yaml:"end_moments"`
}

// endMoments are the factored end moments (kN-m) used for Cm
type endMoments struct {
	M1_22 float64 `yaml:"m1_22"`
	M2_22 float64 `yaml:"m2_22"`
	M1_33 float64 `yaml:"m1_33"`
	M2_33 float64 `yaml:"m2_33"`
}

// Column input from flags
var (
	colFile       string
	colFc         float64
	colFy         float64
	colC22        float64
	colC33        float64
	colCover      float64
	colTie        float64
	colRho        float64
	colBars33     int
	colBars22     int
	colBarDia     float64
	colPu         float64
	colPuSus      float64
	colMu22       float64
	colMu33       float64
	colFlipAxial  bool
	colAbsMoments bool
)

// addColumnFlags registers the section and load flags shared by the column
// subcommands
func addColumnFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&colFile, "file", "f", "", "Path to column YAML or JSON file (overrides section and load flags)")

	// Material
	cmd.Flags().Float64Var(&colFc, "fc", 28, "Concrete compressive strength f'c (MPa)")
	cmd.Flags().Float64Var(&colFy, "fy", 415, "Steel yield strength fy (MPa)")

	// Section
	cmd.Flags().Float64Var(&colC22, "c22", 0, "Section dimension along axis 2 (mm)")
	cmd.Flags().Float64Var(&colC33, "c33", 0, "Section dimension along axis 3 (mm)")
	cmd.Flags().Float64Var(&colCover, "cover", 40, "Clear cover to ties (mm)")
	cmd.Flags().Float64Var(&colTie, "tie", 10, "Tie diameter (mm)")
	cmd.Flags().Float64Var(&colRho, "rho", 0.01, "Longitudinal steel ratio ρg")
	cmd.Flags().IntVar(&colBars33, "bars33", 3, "Bars on each face of length c33")
	cmd.Flags().IntVar(&colBars22, "bars22", 3, "Bars on each face of length c22")
	cmd.Flags().Float64Var(&colBarDia, "bar", 20, "Longitudinal bar diameter (mm)")

	// Load
	cmd.Flags().Float64Var(&colPu, "pu", 0, "Factored axial force Pu (kN)")
	cmd.Flags().Float64Var(&colPuSus, "pus", 0, "Factored sustained axial force (kN)")
	cmd.Flags().Float64Var(&colMu22, "mu22", 0, "Factored moment about axis 2-2 (kN-m)")
	cmd.Flags().Float64Var(&colMu33, "mu33", 0, "Factored moment about axis 3-3 (kN-m)")
	cmd.Flags().BoolVar(&colFlipAxial, "flip-axial", false, "Compression is negative in the input forces")
	cmd.Flags().BoolVar(&colAbsMoments, "abs-moments", false, "Use moment magnitudes")
}

// columnInput returns the column described by --file or by flags. Loads are
// converted to N and N-mm.
func columnInput() (*columnFile, error) {
	in := &columnFile{
		Material: column.Material{Fc: colFc, Fy: colFy},
		Section: column.Dimensions{
			C22:          colC22,
			C33:          colC33,
			ClearCover:   colCover,
			TieDiameter:  colTie,
			SteelRatio:   colRho,
			BarsAlongC33: colBars33,
			BarsAlongC22: colBars22,
			BarDiameter:  colBarDia,
		},
		Load: column.Load{Pu: colPu, PuSustained: colPuSus, Mu22: colMu22, Mu33: colMu33},
	}

	if colFile != "" {
		data, err := os.ReadFile(colFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		in = &columnFile{}
		if err := yaml.Unmarshal(data, in); err != nil {
			return nil, fmt.Errorf("failed to parse column file: %w", err)
		}
	}

	in.Load = in.Load.FromAnalysis(1e3, 1e6, colFlipAxial, colAbsMoments)
	return in, nil
}
