package services

import (
	"context"
	"fmt"
	"time"

	"github/itish2003/titanic/dataset"
	"github/itish2003/titanic/logger"
	"github/itish2003/titanic/models"
)

// QueryService interface defines the operations the HTTP layer and CLI need.
type QueryService interface {
	Ask(c context.Context, question string) (*models.Answer, error)
	SupportedQuestions() []models.SupportedQuestion
	DatasetSummary() models.DatasetSummaryResponse
}

// queryServiceImpl answers questions against a single dataset loaded at startup.
type queryServiceImpl struct {
	dispatcher *Dispatcher
	dataset    *dataset.Dataset
	logger     logger.ILogger
}

// NewQueryService creates a new query service instance
func NewQueryService(dispatcher *Dispatcher, ds *dataset.Dataset, log logger.ILogger) QueryService {
	return &queryServiceImpl{
		dispatcher: dispatcher,
		dataset:    ds,
		logger:     log,
	}
}

// Ask implements QueryService
func (q *queryServiceImpl) Ask(c context.Context, question string) (*models.Answer, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	kind, answer, err := q.dispatcher.Dispatch(question, q.dataset)
	if err != nil {
		q.logger.Error("QUERY", "Failed to answer question", map[string]interface{}{
			"question": question,
			"kind":     kind.String(),
			"error":    err,
		})
		return nil, fmt.Errorf("could not answer question: %w", err)
	}

	q.logger.Info("QUERY", "Question answered", map[string]interface{}{
		"question":    question,
		"kind":        kind.String(),
		"has_image":   answer.HasImage(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return &answer, nil
}

func (q *queryServiceImpl) SupportedQuestions() []models.SupportedQuestion {
	rules := q.dispatcher.Rules()
	out := make([]models.SupportedQuestion, len(rules))
	for i, r := range rules {
		out[i] = models.SupportedQuestion{
			Priority: i + 1,
			Kind:     r.Kind.String(),
			Phrase:   r.Phrase,
			Chart:    r.Kind.IsChart(),
		}
	}
	return out
}

func (q *queryServiceImpl) DatasetSummary() models.DatasetSummaryResponse {
	s := q.dataset.Summary()
	return models.DatasetSummaryResponse{
		ID:              s.ID,
		Source:          s.Source,
		Sample:          s.Sample,
		Rows:            s.Rows,
		Columns:         s.Columns,
		MissingAge:      s.MissingAge,
		MissingEmbarked: s.MissingEmbarked,
	}
}
