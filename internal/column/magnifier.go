package column

import (
	"math"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// StiffnessResult holds the moment magnifier obtained with one expression
// for the effective flexural stiffness
type StiffnessResult struct {
	EI       float64 // Effective stiffness (N-mm²)
	Pc       float64 // Critical buckling load (N)
	Delta    float64 // δns, +Inf when Pu >= 0.75Pc
	Unstable bool    // Pu >= 0.75Pc
}

// Magnification holds the nonsway moment magnifier about one axis for
// each stiffness expression of NSCP 2015 Section 406.6.4.4.4
type Magnification struct {
	Axis    Axis
	Cm      float64
	BetaDns float64 // sustained to total factored axial load
	Ig      float64 // mm⁴
	Ise     float64 // mm⁴
	I       float64 // Table 406.6.3.1.1(b) (mm⁴)

	EqA StiffnessResult // 0.4EcIg/(1+βdns)
	EqB StiffnessResult // (0.2EcIg + EsIse)/(1+βdns)
	EqC StiffnessResult // EcI/(1+βdns)
}

// Governing returns the largest magnifier of the three expressions
func (m *Magnification) Governing() float64 {
	return math.Max(m.EqA.Delta, math.Max(m.EqB.Delta, m.EqC.Delta))
}

// Ise calculates the moment of inertia of the reinforcement about the
// section centroid for barsPerFace bars on each of the two faces
// perpendicular to the depth. cover is measured from the section face to
// the surface of the longitudinal bars.
func Ise(barsPerFace int, barDia, depth, cover float64) float64 {
	ab := math.Pi * barDia * barDia / 4
	arm := depth/2 - cover - barDia/2
	return 2 * float64(barsPerFace) * ab * arm * arm
}

// Magnify calculates the nonsway moment magnifier δns about axis
// NSCP 2015 Section 406.6.4.5
func Magnify(axis Axis, m Material, d Dimensions, l Lengths, load Load, cm float64) (*Magnification, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	inertia, err := EffectiveInertia(m, d, load)
	if err != nil {
		return nil, err
	}
	if cm <= 0 || cm > 1 {
		return nil, &ValidationError{"Cm must be greater than 0 and at most 1.0"}
	}

	h, ig := d.depth(axis)
	cover := d.ClearCover + d.TieDiameter
	if d.barsPerFace(axis) > 0 && h/2-cover-d.BarDiameter/2 <= 0 {
		return nil, &ValidationError{"bars do not fit within the section depth"}
	}

	r := &Magnification{
		Axis:    axis,
		Cm:      cm,
		BetaDns: math.Min(load.PuSustained/load.Pu, 1.0),
		Ig:      ig,
		Ise:     Ise(d.barsPerFace(axis), d.BarDiameter, h, cover),
		I:       inertia.I22,
	}
	if axis == Axis33 {
		r.I = inertia.I33
	}

	ec := nscp.Ec(m.Fc)
	creep := 1 + r.BetaDns
	lu, k := l.effective(axis)

	r.EqA = magnifier(0.4*ec*ig/creep, k*lu, load.Pu, cm)
	r.EqB = magnifier((0.2*ec*ig+nscp.Es*r.Ise)/creep, k*lu, load.Pu, cm)
	r.EqC = magnifier(ec*r.I/creep, k*lu, load.Pu, cm)

	return r, nil
}

func magnifier(ei, klu, pu, cm float64) StiffnessResult {
	// Pc = π²EI/(k·lu)²
	pc := math.Pi * math.Pi * ei / (klu * klu)
	res := StiffnessResult{EI: ei, Pc: pc}

	if pu >= nscp.PhiK*pc {
		res.Delta = math.Inf(1)
		res.Unstable = true
		return res
	}

	// δns = Cm / (1 - Pu/0.75Pc) >= 1.0
	res.Delta = math.Max(cm/(1-pu/(nscp.PhiK*pc)), 1.0)
	return res
}
