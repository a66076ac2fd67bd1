package models

// VisitedSet tracks links already chosen by the preferred-match rule during
// a single traversal run. It is never persisted across runs.
type VisitedSet map[string]struct{}

// NewVisitedSet creates an empty VisitedSet
func NewVisitedSet() VisitedSet {
	return make(VisitedSet)
}

// Add records a link as visited
func (v VisitedSet) Add(link string) {
	v[link] = struct{}{}
}

// Contains reports whether a link has already been visited
func (v VisitedSet) Contains(link string) bool {
	_, ok := v[link]
	return ok
}

// Len returns the number of visited links
func (v VisitedSet) Len() int {
	return len(v)
}

// Result is the final outcome of one traversal run
type Result struct {
	Outcome Outcome // Terminal state of the run
	Hops    int     // Pages visited including the start page; valid only when Outcome == OutcomeFound
	LastURL string  // URL the engine was on when the run ended
}
