package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// CardWriter is the storage contract required by the ingestor.
type CardWriter interface {
	UpsertCard(ctx context.Context, card domain.Card) error
}

// CardIngestor loads catalog cards into storage using a bounded worker pool.
type CardIngestor struct {
	writer  CardWriter
	workers int
}

// NewCardIngestor creates a new CardIngestor with the provided concurrency.
func NewCardIngestor(writer CardWriter, workers int) *CardIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &CardIngestor{
		writer:  writer,
		workers: workers,
	}
}

// IngestCards upserts the provided cards concurrently. Per-card failures are
// collected into a *TaskError; cancellation is returned as is.
func (ci *CardIngestor) IngestCards(ctx context.Context, cards []domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ci.workers)

	var (
		mu      sync.Mutex
		taskErr TaskError
	)
	for _, card := range cards {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ci.writer.UpsertCard(gctx, card); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				mu.Lock()
				taskErr.append(fmt.Errorf("card %q: %w", card.Slug, err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return taskErr.asError()
}
