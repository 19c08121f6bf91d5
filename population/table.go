package population

import (
	"fmt"

	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/utils"
)

var (
	ErrPopulationNotFound  = fmt.Errorf("population not found")
	ErrPopulationAmbiguous = fmt.Errorf("population ambiguous")
)

type Status int

const (
	NotFound Status = iota
	Found
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// Result of a population lookup. Population is only meaningful when
// Status is Found.
type Result struct {
	Status     Status
	Population float64
	Matches    int
}

// Registry resolves the population of a unit name at a reporting level
type Registry interface {
	LookupPopulation(level schema.UnitLevel, name string) (Result, error)
}

// Resolve turns the figures matching one name into a lookup result
func Resolve(figures []schema.PopulationFigure) Result {
	switch len(figures) {
	case 0:
		return Result{Status: NotFound}
	case 1:
		return Result{Status: Found, Population: figures[0].Population, Matches: 1}
	default:
		return Result{Status: Ambiguous, Matches: len(figures)}
	}
}

// Table is an in-memory population table of one source
type Table struct {
	Source  string
	figures []schema.PopulationFigure
	index   map[string][]int
}

func NewTable(source string, figures []schema.PopulationFigure) *Table {
	t := &Table{
		Source: source,
		index:  make(map[string][]int),
	}
	for _, f := range figures {
		t.Add(f)
	}
	return t
}

// Add appends a figure, the unit key is derived from its name when empty
func (t *Table) Add(f schema.PopulationFigure) {
	f.Source = t.Source
	if f.UnitKey == "" {
		f.UnitKey = utils.UnitKey(f.Name)
	}
	t.index[f.UnitKey] = append(t.index[f.UnitKey], len(t.figures))
	t.figures = append(t.figures, f)
}

func (t *Table) Len() int {
	return len(t.figures)
}

func (t *Table) Figures() []schema.PopulationFigure {
	return t.figures
}

func (t *Table) Lookup(name string) Result {
	matches := t.index[utils.UnitKey(name)]
	figures := make([]schema.PopulationFigure, 0, len(matches))
	for _, i := range matches {
		figures = append(figures, t.figures[i])
	}
	return Resolve(figures)
}

// Tables holds the state level and the country level tables
type Tables struct {
	US    *Table
	World *Table
}

func (t Tables) LookupPopulation(level schema.UnitLevel, name string) (Result, error) {
	table := t.World
	if level == schema.LevelState {
		table = t.US
	}
	if table == nil {
		return Result{Status: NotFound}, nil
	}
	return table.Lookup(name), nil
}

// For returns the population used to normalise the series of a unit.
// A unit override wins over the registry.
func For(unit schema.Unit, registry Registry) (float64, error) {
	if unit.PopulationOverride > 0 {
		return unit.PopulationOverride, nil
	}
	if registry == nil {
		return 0, fmt.Errorf("%w: %s", ErrPopulationNotFound, unit.Name)
	}

	r, err := registry.LookupPopulation(unit.Level, unit.Name)
	if err != nil {
		return 0, err
	}

	switch r.Status {
	case Found:
		return r.Population, nil
	case Ambiguous:
		return 0, fmt.Errorf("%w: %s has %d entries", ErrPopulationAmbiguous, unit.Name, r.Matches)
	default:
		return 0, fmt.Errorf("%w: %s", ErrPopulationNotFound, unit.Name)
	}
}
