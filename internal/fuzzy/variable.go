package fuzzy

// Term is a named linguistic term over a variable's universe.
type Term struct {
	Name string
	MF   MF
}

// Variable is a named scalar dimension: a frozen universe plus an ordered
// set of linguistic terms. Immutable after construction.
type Variable struct {
	Name     string
	Universe Universe
	Terms    []Term
}

func NewVariable(name string, u Universe, terms []Term) *Variable {
	return &Variable{Name: name, Universe: u, Terms: terms}
}

// TermMF returns the membership function for a term name.
func (v *Variable) TermMF(name string) (MF, bool) {
	for _, t := range v.Terms {
		if t.Name == name {
			return t.MF, true
		}
	}
	return nil, false
}

// Fuzzify evaluates every term's membership at x. The input is clipped to
// the universe first, so out-of-range values saturate at the boundary
// terms instead of failing.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	x = v.Universe.Clip(x)
	out := make(map[string]float64, len(v.Terms))
	for _, t := range v.Terms {
		out[t.Name] = t.MF.Eval(x)
	}
	return out
}
