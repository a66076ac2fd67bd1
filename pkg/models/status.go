package models

// Outcome represents the terminal state of a traversal run
type Outcome string

const (
	OutcomeUnset     Outcome = ""          // Zero value = run not finished
	OutcomeFound     Outcome = "found"     // Target page located
	OutcomeDeadEnd   Outcome = "dead_end"  // Selector had no link to follow
	OutcomeExhausted Outcome = "exhausted" // Attempt budget consumed without finding the target
	OutcomeAborted   Outcome = "aborted"   // Run context cancelled
)

// String implements fmt.Stringer for logging
func (o Outcome) String() string {
	if o == "" {
		return "unset"
	}
	return string(o)
}

// IsTerminal returns true if the outcome is a known terminal value
func (o Outcome) IsTerminal() bool {
	switch o {
	case OutcomeFound, OutcomeDeadEnd, OutcomeExhausted, OutcomeAborted:
		return true
	}
	return false
}
