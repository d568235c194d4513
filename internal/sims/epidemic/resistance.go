package epidemic

// Demographics holds the population proportions and infection-ease
// coefficients that determine the expected resistance. Each pair of vectors
// conceptually sums to one; this is not enforced.
type Demographics struct {
	MFProp       [2]float64
	MFInfluence  [2]float64
	AgeProp      [5]float64
	AgeInfluence [5]float64
}

// DefaultDemographics returns an evenly split population.
func DefaultDemographics() Demographics {
	d := Demographics{
		MFProp:      [2]float64{0.5, 0.5},
		MFInfluence: [2]float64{0.5, 0.5},
	}
	for i := range d.AgeProp {
		d.AgeProp[i] = 1.0 / 5
		d.AgeInfluence[i] = 1.0 / 5
	}
	return d
}

// ExpectedResistance is the population-level resistance ceiling:
// dot(MFProp, MFInfluence) * dot(AgeProp, AgeInfluence).
func (d Demographics) ExpectedResistance() float64 {
	return dot(d.MFProp[:], d.MFInfluence[:]) * dot(d.AgeProp[:], d.AgeInfluence[:])
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
