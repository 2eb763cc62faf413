package services

// QuestionKind identifies one of the analytical questions the dispatcher can answer.
type QuestionKind int

const (
	KindUnknown QuestionKind = iota
	KindMalePercentage
	KindAgeHistogram
	KindAverageFare
	KindEmbarkCounts
	KindClassSurvival
	KindGenderSurvival
	KindSurvivalRate
	KindFareBoxplot
	KindAgeGroups
)

var kindNames = map[QuestionKind]string{
	KindUnknown:        "unknown",
	KindMalePercentage: "male_percentage",
	KindAgeHistogram:   "age_histogram",
	KindAverageFare:    "average_fare",
	KindEmbarkCounts:   "embark_counts",
	KindClassSurvival:  "class_survival",
	KindGenderSurvival: "gender_survival",
	KindSurvivalRate:   "survival_rate",
	KindFareBoxplot:    "fare_boxplot",
	KindAgeGroups:      "age_groups",
}

func (k QuestionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsChart reports whether answers of this kind carry an image.
func (k QuestionKind) IsChart() bool {
	return k == KindAgeHistogram || k == KindFareBoxplot
}
