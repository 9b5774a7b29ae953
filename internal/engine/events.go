package engine

import "github.com/irixaligned/swat/internal/manifest"

// EventKind identifies a progress event. For a given step, events are
// emitted in the order declared here.
type EventKind int

const (
	EventIntegrity   EventKind = iota // image MD5 matched
	EventDescription                  // human summary of the step
	EventCommand                      // exact command line about to run
	EventOutcome                      // terminal state of the step
)

// Event reports progress of a single step.
type Event struct {
	Kind    EventKind
	Index   int // 1-based step index
	Total   int
	Step    manifest.Step
	Message string
	Args    []string // EventCommand only
	Status  string   // EventOutcome only
	Err     error    // EventOutcome on failure
}

// Sink receives progress events. It is called synchronously from the run
// loop and should return quickly.
type Sink func(Event)
