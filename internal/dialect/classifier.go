package dialect

// Classification is the result of scoring evidence for a file.
type Classification struct {
	// Minimum is the oldest version accepting every observed construct.
	Minimum Version
	// Strongest is the hint that forced Minimum; zero when Minimum is Lua51.
	Strongest Hint
	// Counts holds the number of hints per required version.
	Counts [versionCount]int
}

// Classifier folds evidence into a minimum version.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	out := Classification{Minimum: Lua51}
	if e == nil {
		return out
	}
	for _, h := range e.hints {
		if h.Needs >= versionCount {
			continue
		}
		out.Counts[h.Needs]++
		if h.Needs > out.Minimum {
			out.Minimum = h.Needs
			out.Strongest = h
		}
	}
	return out
}

// Satisfies reports whether target accepts everything the classification saw.
func (c Classification) Satisfies(target Version) bool {
	return target >= c.Minimum
}
