package nscp

import "math"

// NSCP 2015 Material and Column Design Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Longitudinal reinforcement limits for columns (Section 410.6.1.1)
	ColumnRhoMin = 0.01
	ColumnRhoMax = 0.08

	// Bounds on the column moment of inertia, Table 406.6.3.1.1(b)
	ColumnInertiaMin = 0.35 // × Ig
	ColumnInertiaMax = 0.875 // × Ig

	// Stiffness reduction factor (Section 406.6.4.5.2)
	PhiK = 0.75

	// Concrete strength limits accepted by the column routines (MPa)
	FcMin = 17.0
	FcMax = 80.0
)

// Ec calculates the modulus of elasticity of normal-weight concrete
// NSCP 2015 Section 419.2.2.1
func Ec(fc float64) float64 {
	// Ec = 4700√f'c (MPa)
	return 4700 * math.Sqrt(fc)
}

// Po calculates the nominal axial strength at zero eccentricity
// NSCP 2015 Section 422.4.2.2
func Po(fc, fy, ag, ast float64) float64 {
	// Po = 0.85f'c(Ag - Ast) + fy·Ast (N)
	return 0.85*fc*(ag-ast) + fy*ast
}

// Cm calculates the factor relating the actual moment diagram to an
// equivalent uniform moment diagram
// NSCP 2015 Section 406.6.4.5.3(a)
//
// m1 and m2 are the end moments signed so that M1/M2 is positive when the
// column is bent in single curvature. The end with the larger magnitude is
// taken as M2.
func Cm(m1, m2 float64) float64 {
	if math.Abs(m1) > math.Abs(m2) {
		m1, m2 = m2, m1
	}
	if m2 == 0 {
		return 1.0
	}
	// Cm = 0.6 + 0.4(M1/M2)
	return 0.6 + 0.4*m1/m2
}
