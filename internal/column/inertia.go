package column

import (
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// InertiaResult holds the effective moments of inertia for elastic analysis
// at factored load
type InertiaResult struct {
	// Section properties
	Ag  float64 // Gross area (mm²)
	Ast float64 // Longitudinal steel area (mm²)
	Po  float64 // Nominal axial strength at zero eccentricity (N)

	// Gross moments of inertia (mm⁴)
	Ig22 float64
	Ig33 float64

	// Effective moments of inertia (mm⁴)
	I22 float64
	I33 float64

	// I / Ig
	Ratio22 float64
	Ratio33 float64
}

// EffectiveInertia calculates the column moments of inertia for elastic
// analysis at factored load
// NSCP 2015 Table 406.6.3.1.1(b)
func EffectiveInertia(m Material, d Dimensions, load Load) (*InertiaResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := load.Validate(); err != nil {
		return nil, err
	}

	r := &InertiaResult{
		Ag:  d.ag(),
		Ast: d.ast(),
	}
	r.Po = nscp.Po(m.Fc, m.Fy, r.Ag, r.Ast)

	r.I22, r.Ig22 = inertia(d, load, r.Po, Axis22)
	r.I33, r.Ig33 = inertia(d, load, r.Po, Axis33)
	r.Ratio22 = r.I22 / r.Ig22
	r.Ratio33 = r.I33 / r.Ig33

	return r, nil
}

// inertia returns the bounded effective and gross moment of inertia about axis
func inertia(d Dimensions, load Load, po float64, axis Axis) (float64, float64) {
	h, ig := d.depth(axis)
	ag, ast := d.ag(), d.ast()

	// I = (0.80 + 25Ast/Ag)(1 - Mu/(Pu·h) - 0.5Pu/Po)Ig
	i := (0.80 + 25*ast/ag) * (1 - load.moment(axis)/(load.Pu*h) - 0.5*load.Pu/po) * ig

	// 0.35Ig <= I <= 0.875Ig
	i = math.Max(math.Min(i, nscp.ColumnInertiaMax*ig), nscp.ColumnInertiaMin*ig)
	return i, ig
}
