// Package column implements stiffness and slenderness calculations for
// rectangular tied reinforced concrete columns per NSCP 2015 Section 406.
//
// Local axes follow the analysis model: C22 is the section dimension along
// axis 2 and governs bending about axis 2-2 (minor); C33 governs bending
// about axis 3-3 (major).
package column

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// Material holds the specified material strengths (MPa)
type Material struct {
	Fc float64 `json:"fc" yaml:"fc"` // f'c - concrete compressive strength
	Fy float64 `json:"fy" yaml:"fy"` // fy - steel yield strength
}

// Dimensions describes a rectangular column section
type Dimensions struct {
	// Geometry (mm)
	C22         float64 `json:"c22" yaml:"c22"`                 // section width, depth for bending about 2-2
	C33         float64 `json:"c33" yaml:"c33"`                 // section length, depth for bending about 3-3
	ClearCover  float64 `json:"clear_cover" yaml:"clear_cover"` // clear cover to ties (Section 420.6.1.3)
	TieDiameter float64 `json:"tie_diameter" yaml:"tie_diameter"`

	// Longitudinal reinforcement
	SteelRatio   float64 `json:"steel_ratio" yaml:"steel_ratio"`       // ρg = Ast/Ag
	BarsAlongC33 int     `json:"bars_along_c33" yaml:"bars_along_c33"` // bars on each face of length C33
	BarsAlongC22 int     `json:"bars_along_c22" yaml:"bars_along_c22"` // bars on each face of length C22
	BarDiameter  float64 `json:"bar_diameter" yaml:"bar_diameter"`
}

// Lengths holds the unsupported lengths (mm) and effective length factors
// about each axis
type Lengths struct {
	Lu22 float64 `json:"lu22" yaml:"lu22"`
	Lu33 float64 `json:"lu33" yaml:"lu33"`
	K22  float64 `json:"k22" yaml:"k22"`
	K33  float64 `json:"k33" yaml:"k33"`
}

// Load holds factored column actions in N and N-mm.
// Pu is positive in compression.
type Load struct {
	Pu          float64 `json:"pu" yaml:"pu"`
	PuSustained float64 `json:"pu_sustained" yaml:"pu_sustained"`
	Mu22        float64 `json:"mu22" yaml:"mu22"`
	Mu33        float64 `json:"mu33" yaml:"mu33"`
}

// FromAnalysis converts actions exported by an analysis program to N and
// N-mm. forceScale and momentScale are the unit multipliers (1e3 and 1e6
// for kN and kN-m). flipAxial negates the axial forces for programs that
// report compression as negative; absMoments drops the moment signs.
func (l Load) FromAnalysis(forceScale, momentScale float64, flipAxial, absMoments bool) Load {
	out := Load{
		Pu:          l.Pu * forceScale,
		PuSustained: l.PuSustained * forceScale,
		Mu22:        l.Mu22 * momentScale,
		Mu33:        l.Mu33 * momentScale,
	}
	if flipAxial {
		out.Pu = -out.Pu
		out.PuSustained = -out.PuSustained
	}
	if absMoments {
		out.Mu22 = math.Abs(out.Mu22)
		out.Mu33 = math.Abs(out.Mu33)
	}
	return out
}

// Axis selects the bending axis
type Axis int

const (
	Axis22 Axis = iota // minor axis, depth C22
	Axis33             // major axis, depth C33
)

func (a Axis) String() string {
	if a == Axis33 {
		return "3-3 (major)"
	}
	return "2-2 (minor)"
}

// Validate checks the material strengths
func (m Material) Validate() error {
	if m.Fc < nscp.FcMin || m.Fc > nscp.FcMax {
		return &ValidationError{fmt.Sprintf("f'c must be between %.0f and %.0f MPa", nscp.FcMin, nscp.FcMax)}
	}
	if m.Fy <= 0 {
		return &ValidationError{"fy must be positive"}
	}
	return nil
}

// Validate checks the section dimensions
func (d Dimensions) Validate() error {
	if d.C22 <= 0 || d.C33 <= 0 {
		return &ValidationError{"section dimensions must be positive"}
	}
	if d.ClearCover < 0 || d.TieDiameter < 0 || d.BarDiameter < 0 {
		return &ValidationError{"cover and bar diameters cannot be negative"}
	}
	if d.SteelRatio < 0 || d.SteelRatio > nscp.ColumnRhoMax {
		return &ValidationError{fmt.Sprintf("steel ratio must be between 0 and %.2f", nscp.ColumnRhoMax)}
	}
	if d.BarsAlongC22 < 0 || d.BarsAlongC33 < 0 {
		return &ValidationError{"number of bars cannot be negative"}
	}
	return nil
}

// Validate checks the lengths about both axes
func (l Lengths) Validate() error {
	if l.Lu22 <= 0 || l.Lu33 <= 0 {
		return &ValidationError{"unsupported lengths must be positive"}
	}
	if l.K22 <= 0 || l.K33 <= 0 {
		return &ValidationError{"effective length factors must be positive"}
	}
	return nil
}

// Validate checks that the column is in compression
func (l Load) Validate() error {
	if l.Pu <= 0 {
		return &ValidationError{"Pu must be a positive compressive force"}
	}
	if l.PuSustained < 0 {
		return &ValidationError{"sustained axial force cannot be negative"}
	}
	return nil
}

// ValidationError represents a column input validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Gross section properties

func (d Dimensions) ag() float64  { return d.C22 * d.C33 }
func (d Dimensions) ast() float64 { return d.ag() * d.SteelRatio }

// depth returns the section depth and gross moment of inertia for bending
// about the given axis
func (d Dimensions) depth(axis Axis) (h, ig float64) {
	if axis == Axis33 {
		return d.C33, d.C22 * math.Pow(d.C33, 3) / 12
	}
	return d.C22, d.C33 * math.Pow(d.C22, 3) / 12
}

// barsPerFace returns the bars on each face perpendicular to the depth
func (d Dimensions) barsPerFace(axis Axis) int {
	if axis == Axis33 {
		return d.BarsAlongC22
	}
	return d.BarsAlongC33
}

func (l Lengths) effective(axis Axis) (lu, k float64) {
	if axis == Axis33 {
		return l.Lu33, l.K33
	}
	return l.Lu22, l.K22
}

func (l Load) moment(axis Axis) float64 {
	if axis == Axis33 {
		return l.Mu33
	}
	return l.Mu22
}
