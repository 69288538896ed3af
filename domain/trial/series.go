package trial

// Series projects trials onto the unbiased (A) and biased (B) score
// sequences, aligned by trial index.
func Series(trials []Trial) (a, b []float64) {
	a = make([]float64, len(trials))
	b = make([]float64, len(trials))
	for i, t := range trials {
		a[i] = t.ScoreA
		b[i] = t.ScoreB
	}
	return a, b
}

// Outcomes projects trials onto their correctness flags in order
func Outcomes(trials []Trial) []bool {
	out := make([]bool, len(trials))
	for i, t := range trials {
		out[i] = t.IsChoiceCorrect
	}
	return out
}

// Group is the subset of trials scored by one biased persona
type Group struct {
	Persona string
	Trials  []Trial
}

// GroupByPersona splits trials by LabelB, keeping personas in order of first
// appearance and trials in their original order within each group.
func GroupByPersona(trials []Trial) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, t := range trials {
		i, ok := index[t.LabelB]
		if !ok {
			i = len(groups)
			index[t.LabelB] = i
			groups = append(groups, Group{Persona: t.LabelB})
		}
		groups[i].Trials = append(groups[i].Trials, t)
	}
	return groups
}
