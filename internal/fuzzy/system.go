package fuzzy

import "fmt"

// Clause matches one input variable against one or more of its terms.
// Multiple terms are a disjunction: the clause truth is the maximum of
// the term memberships.
type Clause struct {
	Variable string
	Terms    []string
}

// Rule pairs an AND-conjunction of clauses with one consequent term.
// Rule tables are plain data so alternative rule sets can be swapped in
// and tested table-driven.
type Rule struct {
	When []Clause
	Then string
}

// System is an immutable Mamdani inference bundle: antecedent variables,
// one consequent variable and a rule set. Build it once; afterwards every
// Infer call allocates its own working buffers, so concurrent queries
// need no locking.
type System struct {
	inputs []*Variable
	byName map[string]*Variable
	output *Variable
	rules  []Rule
}

// NewSystem validates that every rule references known variables and
// terms. Validation failures are construction-time errors; a built system
// cannot fire an unknown term.
func NewSystem(inputs []*Variable, output *Variable, rules []Rule) (*System, error) {
	byName := make(map[string]*Variable, len(inputs))
	for _, v := range inputs {
		byName[v.Name] = v
	}

	for i, r := range rules {
		for _, c := range r.When {
			v, ok := byName[c.Variable]
			if !ok {
				return nil, fmt.Errorf("rule %d: unknown input variable %q", i, c.Variable)
			}
			if len(c.Terms) == 0 {
				return nil, fmt.Errorf("rule %d: empty clause for %q", i, c.Variable)
			}
			for _, term := range c.Terms {
				if _, ok := v.TermMF(term); !ok {
					return nil, fmt.Errorf("rule %d: variable %q has no term %q", i, c.Variable, term)
				}
			}
		}
		if _, ok := output.TermMF(r.Then); !ok {
			return nil, fmt.Errorf("rule %d: output %q has no term %q", i, output.Name, r.Then)
		}
	}

	return &System{inputs: inputs, byName: byName, output: output, rules: rules}, nil
}

// Inputs returns the antecedent variables in construction order.
func (s *System) Inputs() []*Variable {
	return s.inputs
}

// Output returns the consequent variable.
func (s *System) Output() *Variable {
	return s.output
}

// RuleCount returns the size of the rule base.
func (s *System) RuleCount() int {
	return len(s.rules)
}

// Infer runs one Mamdani query: fuzzification, min/max firing strength,
// clip implication, max aggregation and centroid defuzzification. fired
// reports whether any rule produced nonzero output; when false the crisp
// value is undefined and the caller must substitute its documented
// fallback.
func (s *System) Infer(in map[string]float64) (crisp float64, fired bool) {
	// Fuzzify each input once per query.
	memb := make(map[string]map[string]float64, len(s.inputs))
	for _, v := range s.inputs {
		x, ok := in[v.Name]
		if !ok {
			return 0, false
		}
		memb[v.Name] = v.Fuzzify(x)
	}

	agg := make([]float64, len(s.output.Universe.Points))
	for _, r := range s.rules {
		strength := s.firingStrength(r, memb)
		if strength <= 0 {
			continue
		}
		mf, _ := s.output.TermMF(r.Then)
		for i, x := range s.output.Universe.Points {
			v := mf.Eval(x)
			if v > strength {
				v = strength // implication: clip to firing strength
			}
			if v > agg[i] {
				agg[i] = v // aggregation: running max, terms overlap
			}
		}
	}

	var num, den float64
	for i, x := range s.output.Universe.Points {
		num += agg[i] * x
		den += agg[i]
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// firingStrength evaluates a rule antecedent: inner disjunctions first
// (max over a clause's terms), then the conjunction (min over clauses).
func (s *System) firingStrength(r Rule, memb map[string]map[string]float64) float64 {
	strength := 1.0
	for _, c := range r.When {
		clause := 0.0
		for _, term := range c.Terms {
			if m := memb[c.Variable][term]; m > clause {
				clause = m
			}
		}
		if clause < strength {
			strength = clause
		}
	}
	return strength
}
