package logger

// Output controls what categories of information the CLI prints at each
// verbosity level, independent of log severity.
//
//	0 (default) - results and errors with hints
//	1 (-v)      - + config sources and batch summaries
//	2 (-vv)     - + recognized fragments and timing
//	3 (-vvv)    - + resolution internals

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota
	OutputErrors

	// Level 1 (-v)
	OutputConfig
	OutputSummary

	// Level 2 (-vv)
	OutputFragments
	OutputTiming

	// Level 3 (-vvv)
	OutputInternal
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:   VerbosityUser,
	OutputErrors:    VerbosityUser,
	OutputConfig:    VerbosityInfo,
	OutputSummary:   VerbosityInfo,
	OutputFragments: VerbosityDebug,
	OutputTiming:    VerbosityDebug,
	OutputInternal:  VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:   "results",
	OutputErrors:    "errors",
	OutputConfig:    "config",
	OutputSummary:   "summary",
	OutputFragments: "fragments",
	OutputTiming:    "timing",
	OutputInternal:  "internal",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
