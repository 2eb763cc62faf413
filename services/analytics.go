package services

import (
	"gonum.org/v1/gonum/stat"

	"github/itish2003/titanic/dataset"
)

// AgeGroup is a right-closed interval (Low, High].
type AgeGroup struct {
	Label string
	Low   float64
	High  float64
}

var AgeGroups = []AgeGroup{
	{"0-10", 0, 10},
	{"10-20", 10, 20},
	{"20-30", 20, 30},
	{"30-40", 30, 40},
	{"40-50", 40, 50},
	{"50-60", 50, 60},
	{"60-70", 60, 70},
	{"70-80", 70, 80},
}

// ageGroupFor returns the bucket label for age; ok is false when no bucket holds it.
func ageGroupFor(age float64) (string, bool) {
	for _, g := range AgeGroups {
		if age > g.Low && age <= g.High {
			return g.Label, true
		}
	}
	return "", false
}

// malePercentage is the share of rows with a recorded sex that are "male", in [0,100].
// It is 0 when no row has a recorded sex.
func malePercentage(ds *dataset.Dataset) float64 {
	var known, males int
	ds.Each(func(p dataset.Passenger) {
		if p.Sex == "" {
			return
		}
		known++
		if p.Sex == "male" {
			males++
		}
	})
	if known == 0 {
		return 0
	}
	return float64(males) / float64(known) * 100
}

func averageFare(ds *dataset.Dataset) float64 {
	fares := ds.Fares()
	if len(fares) == 0 {
		return 0
	}
	return stat.Mean(fares, nil)
}

func survivalRate(ds *dataset.Dataset) float64 {
	outcomes := make([]float64, 0, ds.Len())
	ds.Each(func(p dataset.Passenger) {
		outcomes = append(outcomes, boolToFloat(p.Survived))
	})
	if len(outcomes) == 0 {
		return 0
	}
	return stat.Mean(outcomes, nil) * 100
}

// embarkCounts counts passengers per embarkation town, skipping unknown towns.
func embarkCounts(ds *dataset.Dataset) map[string]int {
	counts := make(map[string]int)
	ds.Each(func(p dataset.Passenger) {
		if p.EmbarkTown != "" {
			counts[p.EmbarkTown]++
		}
	})
	return counts
}

func classSurvival(ds *dataset.Dataset) map[int]float64 {
	outcomes := make(map[int][]float64)
	ds.Each(func(p dataset.Passenger) {
		outcomes[p.Pclass] = append(outcomes[p.Pclass], boolToFloat(p.Survived))
	})
	rates := make(map[int]float64, len(outcomes))
	for class, xs := range outcomes {
		rates[class] = stat.Mean(xs, nil) * 100
	}
	return rates
}

func genderSurvival(ds *dataset.Dataset) map[string]float64 {
	outcomes := make(map[string][]float64)
	ds.Each(func(p dataset.Passenger) {
		if p.Sex != "" {
			outcomes[p.Sex] = append(outcomes[p.Sex], boolToFloat(p.Survived))
		}
	})
	rates := make(map[string]float64, len(outcomes))
	for sex, xs := range outcomes {
		rates[sex] = stat.Mean(xs, nil) * 100
	}
	return rates
}

// ageGroupCounts buckets known ages into AgeGroups. Every label is present, possibly
// with a zero count. The grouping lives only in the returned map; the dataset is untouched.
func ageGroupCounts(ds *dataset.Dataset) map[string]int {
	counts := make(map[string]int, len(AgeGroups))
	for _, g := range AgeGroups {
		counts[g.Label] = 0
	}
	for _, age := range ds.Ages() {
		if label, ok := ageGroupFor(age); ok {
			counts[label]++
		}
	}
	return counts
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
