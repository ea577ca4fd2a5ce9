package fuzzy

// ThreePartition builds the standard overlapping 3-term partition of
// [lo, hi]: a saturating trapezoid at each edge and a triangle between
// them, anchored on 3 evenly spaced breakpoints. Deterministic given the
// bounds.
func ThreePartition(lo, hi float64, names [3]string) []Term {
	a := lo
	b := (lo + hi) / 2
	c := hi
	return []Term{
		{Name: names[0], MF: Trap(lo, lo, a, b)},
		{Name: names[1], MF: Tri(a, (a+b)/2, c)},
		{Name: names[2], MF: Trap(b, c, hi, hi)},
	}
}

// FivePartition builds the 5-term analogue over 5 evenly spaced
// breakpoints: flat-saturating trapezoids at the universe edges and three
// interior triangles peaked at the midpoints of adjacent breakpoints.
func FivePartition(lo, hi float64, names [5]string) []Term {
	step := (hi - lo) / 4
	a := lo
	b := lo + step
	c := lo + 2*step
	d := lo + 3*step
	e := hi
	return []Term{
		{Name: names[0], MF: Trap(lo, lo, a, b)},
		{Name: names[1], MF: Tri(a, (a+b)/2, c)},
		{Name: names[2], MF: Tri(b, (b+c)/2, d)},
		{Name: names[3], MF: Tri(c, (c+d)/2, e)},
		{Name: names[4], MF: Trap(d, e, hi, hi)},
	}
}
