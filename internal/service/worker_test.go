package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

type stubWriter struct {
	mu       sync.Mutex
	written  []string
	failFor  map[string]error
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *stubWriter) UpsertCard(ctx context.Context, card domain.Card) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxSeen.Load()
		if n <= seen || s.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if err := s.failFor[card.Slug]; err != nil {
		return err
	}
	s.mu.Lock()
	s.written = append(s.written, card.Slug)
	s.mu.Unlock()
	return nil
}

func TestCardIngestor_IngestCards(t *testing.T) {
	writer := &stubWriter{}
	ingestor := NewCardIngestor(writer, 2)

	require.NoError(t, ingestor.IngestCards(context.Background(), testCatalog().cards))

	sort.Strings(writer.written)
	assert.Equal(t, []string{"atlas-reserve", "fuel-saver", "grocer-cash", "voyager-zero"}, writer.written)
	assert.LessOrEqual(t, writer.maxSeen.Load(), int32(2))
}

func TestCardIngestor_CollectsFailures(t *testing.T) {
	boom := errors.New("constraint violation")
	writer := &stubWriter{failFor: map[string]error{"grocer-cash": boom, "fuel-saver": boom}}
	ingestor := NewCardIngestor(writer, 0)

	err := ingestor.IngestCards(context.Background(), testCatalog().cards)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Len(t, taskErr.Errors, 2)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, writer.written, 2)
}

func TestCardIngestor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCardIngestor(&stubWriter{}, 2).IngestCards(ctx, testCatalog().cards)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCardIngestor_Empty(t *testing.T) {
	assert.NoError(t, NewCardIngestor(&stubWriter{}, 2).IngestCards(context.Background(), nil))
}

func TestTaskError_Message(t *testing.T) {
	var e TaskError
	assert.Equal(t, "no errors", e.Error())
	e.append(errors.New("a"))
	assert.Equal(t, "a", e.Error())
	e.append(errors.New("b"))
	assert.Equal(t, "multiple errors: a; b;", e.Error())
}
