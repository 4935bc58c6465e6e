package app

import "fmt"

// Phase is the harness lifecycle state. Transitions are strictly
// sequential and happen once per Harness instance.
type Phase int32

const (
	PhaseUninitialized Phase = iota
	PhaseRegistryPopulated
	PhaseReferencesResolved
	PhaseServing
	PhaseStopped
	PhaseFailed
)

// String implements fmt.Stringer for log output.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseRegistryPopulated:
		return "RegistryPopulated"
	case PhaseReferencesResolved:
		return "ReferencesResolved"
	case PhaseServing:
		return "Serving"
	case PhaseStopped:
		return "Stopped"
	case PhaseFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}
