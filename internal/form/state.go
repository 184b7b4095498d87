package form

import "fmt"

// State is the lifecycle position of one form instance.
//
//	editing --(validation fails)--> editing (errors surfaced)
//	editing --(validation passes)--> submitting --> submitted
//	submitting --(submit fails)--> editing (submit error surfaced)
//	submitted --(Reset)--> editing
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state by name so JSON views read "editing"
// rather than 0.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
