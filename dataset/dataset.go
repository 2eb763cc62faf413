// Package dataset holds the passenger table the query service answers questions about.
// A Dataset is built once at startup and never mutated afterwards, so it can be shared
// across goroutines without locking.
package dataset

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrMissingColumn = errors.New("dataset is missing a required column")
	ErrEmptyDataset  = errors.New("dataset has no rows")
)

// Passenger is a single row of the table. Age and EmbarkTown are optional in the source data.
type Passenger struct {
	Sex        string
	Age        float64
	HasAge     bool
	Fare       float64
	EmbarkTown string // empty when unknown
	Survived   bool
	Pclass     int
}

// Summary describes the loaded table for the /dataset endpoint and startup logs.
// Sample is set when the answers come from the 30-row bundled sample rather than
// the full passenger list.
type Summary struct {
	ID              string
	Source          string
	Sample          bool
	Rows            int
	Columns         []string
	MissingAge      int
	MissingEmbarked int
}

type Dataset struct {
	id         string
	source     string
	sample     bool
	columns    []string
	passengers []Passenger
}

func newDataset(columns []string, passengers []Passenger) *Dataset {
	return &Dataset{
		id:         uuid.New().String(),
		source:     "reader",
		columns:    columns,
		passengers: passengers,
	}
}

// ID identifies this particular load. Caches key derived artefacts by it.
func (d *Dataset) ID() string {
	return d.id
}

func (d *Dataset) Len() int {
	return len(d.passengers)
}

// Columns returns the header of the source file, in file order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Source names where the rows came from: a file path, "bundled:<file>" or "reader".
func (d *Dataset) Source() string {
	return d.source
}

// Each calls fn for every row in file order. Passenger is passed by value.
func (d *Dataset) Each(fn func(p Passenger)) {
	for _, p := range d.passengers {
		fn(p)
	}
}

// Ages returns the known ages; rows with a null age are dropped.
func (d *Dataset) Ages() []float64 {
	ages := make([]float64, 0, len(d.passengers))
	for _, p := range d.passengers {
		if p.HasAge {
			ages = append(ages, p.Age)
		}
	}
	return ages
}

func (d *Dataset) Fares() []float64 {
	fares := make([]float64, len(d.passengers))
	for i, p := range d.passengers {
		fares[i] = p.Fare
	}
	return fares
}

func (d *Dataset) Summary() Summary {
	s := Summary{
		ID:      d.id,
		Source:  d.source,
		Sample:  d.sample,
		Rows:    len(d.passengers),
		Columns: d.Columns(),
	}
	for _, p := range d.passengers {
		if !p.HasAge {
			s.MissingAge++
		}
		if p.EmbarkTown == "" {
			s.MissingEmbarked++
		}
	}
	return s
}
