package markov

// Probability pairs a state with its probability.
type Probability struct {
	State State   `json:"state"`
	P     float64 `json:"p"`
}

// Distribution is ordered by the state enumeration.
type Distribution []Probability

func (d Distribution) Sum() float64 {
	sum := 0.0
	for _, p := range d {
		sum += p.P
	}
	return sum
}

func (d Distribution) Get(s State) float64 {
	for _, p := range d {
		if p.State == s {
			return p.P
		}
	}
	return 0
}

func (d Distribution) Vector() []float64 {
	out := make([]float64, len(d))
	for i, p := range d {
		out[i] = p.P
	}
	return out
}

// Mode returns the most probable state. States whose probability is close to
// the maximum are treated as tied and the earliest in enumeration order wins.
func (d Distribution) Mode() (State, float64) {
	if len(d) == 0 {
		return 0, 0
	}
	best := d[0].P
	for _, p := range d[1:] {
		if p.P > best {
			best = p.P
		}
	}
	for _, p := range d {
		if isClose(p.P, best) {
			return p.State, best
		}
	}
	return d[0].State, best
}

// History is the sequence of states visited by one simulation run.
type History []State

func (h History) Len() int { return len(h) }

func (h History) At(i int) State { return h[i] }

func (h History) Clone() History {
	c := make(History, len(h))
	copy(c, h)
	return c
}

func (h History) Labels() []string {
	out := make([]string, len(h))
	for i, s := range h {
		out[i] = s.String()
	}
	return out
}
