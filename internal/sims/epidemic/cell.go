package epidemic

import "fmt"

// State is a person's health state. Its values index palettes and display
// buffers; configuration files and edit requests use State.Code instead.
type State uint8

const (
	Susceptible State = iota
	Latent
	Infected
	Recovered
	Dead
)

// NumStates is the number of distinct health states.
const NumStates = 5

var stateNames = [NumStates]string{"susceptible", "latent", "infected", "recovered", "dead"}

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", uint8(s))
	}
	return stateNames[s]
}

// Valid reports whether s is one of the five health states.
func (s State) Valid() bool { return s < NumStates }

// Next returns the state that follows s in the manual-edit cycle
// Susceptible, Latent, Infected, Recovered, Dead, Susceptible, ...
func (s State) Next() State { return (s + 1) % NumStates }

// State codes follow the manual-edit cycle starting from Dead, so code 3 is
// Infected in every saved grid.
var (
	stateCodes = [NumStates]int{Susceptible: 1, Latent: 2, Infected: 3, Recovered: 4, Dead: 0}
	codeStates = [NumStates]State{Dead, Susceptible, Latent, Infected, Recovered}
)

// Code returns the state code written to configuration files.
func (s State) Code() int {
	if !s.Valid() {
		return -1
	}
	return stateCodes[s]
}

// ParseState converts a state code (0 Dead, 1 Susceptible, 2 Latent,
// 3 Infected, 4 Recovered) into a State.
func ParseState(code int) (State, error) {
	if code < 0 || code >= NumStates {
		return 0, fmt.Errorf("invalid state code %d", code)
	}
	return codeStates[code], nil
}

// Cell is one person on the grid.
type Cell struct {
	State      State
	Resistance float64
	// Counter is the number of consecutive ticks spent in State.
	Counter int
}

// SetState moves the cell into s and restarts its counter.
func (c *Cell) SetState(s State) {
	c.State = s
	c.Counter = 0
}

// Counts is the per-tick population breakdown by state.
type Counts struct {
	Susceptible int `json:"susceptible"`
	Latent      int `json:"latent"`
	Infected    int `json:"infected"`
	Recovered   int `json:"recovered"`
	Dead        int `json:"dead"`
}

// Columns names the Counts fields in log column order.
var Columns = []string{"susceptible", "latent", "infected", "recovered", "dead"}

// Add tallies one cell in state s.
func (c *Counts) Add(s State) {
	switch s {
	case Susceptible:
		c.Susceptible++
	case Latent:
		c.Latent++
	case Infected:
		c.Infected++
	case Recovered:
		c.Recovered++
	case Dead:
		c.Dead++
	}
}

// Of returns the count for state s.
func (c Counts) Of(s State) int {
	switch s {
	case Susceptible:
		return c.Susceptible
	case Latent:
		return c.Latent
	case Infected:
		return c.Infected
	case Recovered:
		return c.Recovered
	case Dead:
		return c.Dead
	}
	return 0
}

// Row returns the counts in log column order.
func (c Counts) Row() []int {
	return []int{c.Susceptible, c.Latent, c.Infected, c.Recovered, c.Dead}
}

// Total is the population size the counts describe.
func (c Counts) Total() int {
	return c.Susceptible + c.Latent + c.Infected + c.Recovered + c.Dead
}

// CountsFromRow is the inverse of Counts.Row.
func CountsFromRow(row []int) (Counts, error) {
	if len(row) != len(Columns) {
		return Counts{}, fmt.Errorf("count row has %d values, want %d", len(row), len(Columns))
	}
	for i, v := range row {
		if v < 0 {
			return Counts{}, fmt.Errorf("negative %s count %d", Columns[i], v)
		}
	}
	return Counts{
		Susceptible: row[0],
		Latent:      row[1],
		Infected:    row[2],
		Recovered:   row[3],
		Dead:        row[4],
	}, nil
}
