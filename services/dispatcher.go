package services

import (
	"fmt"
	"strings"

	"github/itish2003/titanic/dataset"
	"github/itish2003/titanic/logger"
	"github/itish2003/titanic/models"
)

const FallbackText = "I couldn't understand your query. Please try again."

// Rule pairs a phrase with the computation that answers it. A question matches a
// rule when its lowercased text contains Phrase.
type Rule struct {
	Kind   QuestionKind
	Phrase string
	answer func(ds *dataset.Dataset) (models.Answer, error)
}

func (r Rule) Matches(normalized string) bool {
	return strings.Contains(normalized, r.Phrase)
}

// Dispatcher classifies questions against an ordered rule list. The first matching
// rule wins, so more specific phrases must come before the generic ones that they
// contain (e.g. "survival rate for each class" before "survival rate").
type Dispatcher struct {
	rules  []Rule
	charts *ChartCache
	logger logger.ILogger
}

func NewDispatcher(charts *ChartCache, log logger.ILogger) *Dispatcher {
	d := &Dispatcher{
		charts: charts,
		logger: log,
	}
	d.rules = []Rule{
		{Kind: KindMalePercentage, Phrase: "percentage of passengers were male", answer: answerMalePercentage},
		{Kind: KindAgeHistogram, Phrase: "histogram of passenger ages", answer: d.answerAgeHistogram},
		{Kind: KindAverageFare, Phrase: "average ticket fare", answer: answerAverageFare},
		{Kind: KindEmbarkCounts, Phrase: "how many passengers embarked from each port", answer: answerEmbarkCounts},
		{Kind: KindClassSurvival, Phrase: "survival rate for each class", answer: answerClassSurvival},
		{Kind: KindGenderSurvival, Phrase: "percentage of males and females survived", answer: answerGenderSurvival},
		{Kind: KindSurvivalRate, Phrase: "survival rate", answer: answerSurvivalRate},
		{Kind: KindFareBoxplot, Phrase: "boxplot of fares", answer: d.answerFareBoxplot},
		{Kind: KindAgeGroups, Phrase: "how many passengers were in each age group", answer: answerAgeGroups},
	}
	return d
}

// Rules returns the rule list in priority order.
func (d *Dispatcher) Rules() []Rule {
	out := make([]Rule, len(d.rules))
	copy(out, d.rules)
	return out
}

// Classify returns the kind of the first rule the question matches.
func (d *Dispatcher) Classify(question string) (QuestionKind, bool) {
	if r, ok := d.match(question); ok {
		return r.Kind, true
	}
	return KindUnknown, false
}

// Handle answers a question over ds. An unrecognized question yields FallbackText and
// no error; an error means the matched computation could not run on this dataset.
func (d *Dispatcher) Handle(question string, ds *dataset.Dataset) (models.Answer, error) {
	_, answer, err := d.Dispatch(question, ds)
	return answer, err
}

// Dispatch is Handle that also reports which rule answered, KindUnknown for the fallback.
// The question is matched once.
func (d *Dispatcher) Dispatch(question string, ds *dataset.Dataset) (QuestionKind, models.Answer, error) {
	rule, ok := d.match(question)
	if !ok {
		d.logger.Debug("QUERY", "No rule matched question", map[string]interface{}{"question": question})
		return KindUnknown, models.Answer{Text: FallbackText}, nil
	}

	answer, err := rule.answer(ds)
	if err != nil {
		return rule.Kind, models.Answer{}, fmt.Errorf("answer %s: %w", rule.Kind, err)
	}
	return rule.Kind, answer, nil
}

func (d *Dispatcher) match(question string) (Rule, bool) {
	normalized := strings.ToLower(question)
	for _, r := range d.rules {
		if r.Matches(normalized) {
			return r, true
		}
	}
	return Rule{}, false
}

func answerMalePercentage(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: fmt.Sprintf("%s%% of the passengers were male.", formatPercent(malePercentage(ds))),
	}, nil
}

func answerAverageFare(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: "The average ticket fare was " + formatCurrency(averageFare(ds)),
	}, nil
}

func answerEmbarkCounts(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: "Number of passengers per port: " + formatCounts(embarkCounts(ds)),
	}, nil
}

func answerClassSurvival(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: "Survival rate per class: " + formatClassPercentages(classSurvival(ds)),
	}, nil
}

func answerGenderSurvival(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: "Survival rate by gender: " + formatPercentages(genderSurvival(ds)),
	}, nil
}

func answerSurvivalRate(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: fmt.Sprintf("The overall survival rate was %s%%.", formatPercent(survivalRate(ds))),
	}, nil
}

func answerAgeGroups(ds *dataset.Dataset) (models.Answer, error) {
	return models.Answer{
		Text: "Passenger count by age group: " + formatCounts(ageGroupCounts(ds)),
	}, nil
}

func (d *Dispatcher) answerAgeHistogram(ds *dataset.Dataset) (models.Answer, error) {
	img, err := d.charts.GetOrRender(ds.ID(), KindAgeHistogram, func() ([]byte, error) {
		return renderAgeHistogram(ds.Ages())
	})
	if err != nil {
		return models.Answer{}, err
	}
	return models.Answer{Text: "Here is the histogram of passenger ages.", Image: img}, nil
}

func (d *Dispatcher) answerFareBoxplot(ds *dataset.Dataset) (models.Answer, error) {
	img, err := d.charts.GetOrRender(ds.ID(), KindFareBoxplot, func() ([]byte, error) {
		return renderFareBoxplot(ds.Fares())
	})
	if err != nil {
		return models.Answer{}, err
	}
	return models.Answer{Text: "Here is the boxplot of ticket fares.", Image: img}, nil
}
