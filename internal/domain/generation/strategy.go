package generation

// RefreshPolicy decides what happens when a page slug already exists.
type RefreshPolicy int

const (
	// CreateOnly leaves existing pages untouched and counts them as skipped.
	CreateOnly RefreshPolicy = iota
	// UpsertAlways rewrites existing pages in place and re-activates them.
	UpsertAlways
)

// OnItemError decides how a failure on a single page affects the run.
type OnItemError int

const (
	// Abort stops the run and returns the error.
	Abort OnItemError = iota
	// LogAndContinue records the failure and moves on to the next page.
	LogAndContinue
)

// Strategy parameterizes a generation run.
type Strategy struct {
	Name             string
	Refresh          RefreshPolicy
	OnItemError      OnItemError
	RequirePrincipal bool
}

var (
	// OnDemand is used by the authenticated generation endpoint.
	OnDemand = Strategy{Name: "on-demand", Refresh: CreateOnly, OnItemError: Abort, RequirePrincipal: true}
	// SeedImport is used by the seed command.
	SeedImport = Strategy{Name: "seed-import", Refresh: UpsertAlways, OnItemError: LogAndContinue}
)

// CombinedBound caps how many professions and cities feed combined page generation.
type CombinedBound struct {
	Professions int
	Cities      int
}

// DefaultCombinedBound pairs the first five professions with the first five cities.
var DefaultCombinedBound = CombinedBound{Professions: 5, Cities: 5}

// Result counts the outcome of a generation run.
type Result struct {
	Created   int
	Refreshed int
	Skipped   int
	Failed    int
}

// Add returns the element-wise sum of two results.
func (r Result) Add(other Result) Result {
	return Result{
		Created:   r.Created + other.Created,
		Refreshed: r.Refreshed + other.Refreshed,
		Skipped:   r.Skipped + other.Skipped,
		Failed:    r.Failed + other.Failed,
	}
}

// Written is the number of pages created or refreshed.
func (r Result) Written() int {
	return r.Created + r.Refreshed
}
