package fuzzy

// MF maps a crisp value to a degree of truth in [0, 1].
type MF interface {
	Eval(x float64) float64
}

// TriMF is a triangular membership function with ordered breakpoints
// a <= b <= c and its peak at b. a == b or b == c collapses the
// corresponding slope into a shoulder.
type TriMF struct {
	A, B, C float64
}

func Tri(a, b, c float64) TriMF {
	return TriMF{A: a, B: b, C: c}
}

func (m TriMF) Eval(x float64) float64 {
	switch {
	case x < m.A || x > m.C:
		return 0
	case x == m.B:
		return 1
	case x < m.B:
		return (x - m.A) / (m.B - m.A)
	default:
		return (m.C - x) / (m.C - m.B)
	}
}

// TrapMF is a trapezoidal membership function with ordered breakpoints
// a <= b <= c <= d and a plateau of 1 on [b, c].
type TrapMF struct {
	A, B, C, D float64
}

func Trap(a, b, c, d float64) TrapMF {
	return TrapMF{A: a, B: b, C: c, D: d}
}

func (m TrapMF) Eval(x float64) float64 {
	switch {
	case x < m.A || x > m.D:
		return 0
	case x >= m.B && x <= m.C:
		return 1
	case x < m.B:
		return (x - m.A) / (m.B - m.A)
	default:
		return (m.D - x) / (m.D - m.C)
	}
}
