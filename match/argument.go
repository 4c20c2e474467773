package match

// Argument is what a variable bound to: how many times it matched and the
// values it captured, in argv order.
type Argument struct {
	Count  uint     `json:"count" yaml:"count"`
	Values []string `json:"values" yaml:"values"`
}

// Value returns the first captured value. Calling it on an Argument without
// values is a programming error and panics.
func (a Argument) Value() string {
	if len(a.Values) == 0 {
		panic("match: Value called on an argument with no values")
	}
	return a.Values[0]
}

// Result is the outcome of matching one argv against a grammar.
type Result struct {
	// Status is parallel to argv.
	Status []Status
	Args   map[string]Argument
	// Unused lists, ascending, the argv indices nothing matched.
	Unused []int
	// Usage is the index of the selected usage pattern, or -1 when the
	// grammar has none.
	Usage int
	// Complete reports whether the selected pattern matched and used
	// every argument.
	Complete bool
}

// Valid reports whether every token is StatusValid.
func (r *Result) Valid() bool {
	if !r.Complete {
		return false
	}
	for _, s := range r.Status {
		if s != StatusValid {
			return false
		}
	}
	return true
}
