package spec

// SignalType classifies how observable a requirement's correctness signal
// is, as recorded on a stored TaskSpec. Distinct from the planning
// pipeline's richer classification (see package plan), which additionally
// distinguishes FuzzyButConstrainable from PushbackRequired before a task
// spec is ever written.
type SignalType string

const (
	SignalClear         SignalType = "clear"
	SignalFuzzy         SignalType = "fuzzy"
	SignalInternalLogic SignalType = "internal_logic"
)
