package markov

import (
	"strconv"
	"strings"
)

// State is one of the three weather conditions. Its value is the row and
// column index into a transition matrix.
type State int

const (
	Sunny State = iota
	Cloudy
	Rainy
)

// NumStates is the size of the fixed enumeration.
const NumStates = 3

var stateLabels = [NumStates]string{"Soleado", "Nublado", "Lluvioso"}

var stateAliases = map[string]State{
	"soleado":  Sunny,
	"sunny":    Sunny,
	"nublado":  Cloudy,
	"cloudy":   Cloudy,
	"lluvioso": Rainy,
	"rainy":    Rainy,
}

// States returns the enumeration in canonical order.
func States() []State {
	return []State{Sunny, Cloudy, Rainy}
}

// Labels returns the canonical labels in enumeration order.
func Labels() []string {
	out := make([]string, NumStates)
	copy(out, stateLabels[:])
	return out
}

func (s State) Index() int { return int(s) }

func (s State) Valid() bool { return s >= 0 && int(s) < NumStates }

func (s State) String() string {
	if !s.Valid() {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateLabels[s]
}

// ParseState resolves a canonical or English label, ignoring case and
// surrounding spaces.
func ParseState(label string) (State, error) {
	if s, ok := stateAliases[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s, nil
	}
	return 0, &UnknownStateError{Label: label}
}

func checkState(s State) error {
	if !s.Valid() {
		return &UnknownStateError{Label: s.String()}
	}
	return nil
}

func (s State) MarshalText() ([]byte, error) {
	if err := checkState(s); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
