package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_MatchedBeforeQueue(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryClient().
		RespondTo("count(c)", Result{Records: []Record{{"total": int64(3)}}})
	mem.PushReadResult(Result{Records: []Record{{"slug": "a"}}})

	res, err := mem.ExecuteRead(ctx, "MATCH (c:Card) RETURN count(c) AS total", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.First()["total"])

	res, err = mem.ExecuteRead(ctx, "MATCH (c:Card) RETURN c.slug AS slug", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", res.First()["slug"])

	res, err = mem.ExecuteRead(ctx, "MATCH (c:Card) RETURN c.slug AS slug", nil)
	require.NoError(t, err)
	assert.Nil(t, res.First())
	assert.Len(t, mem.ReadCalls(), 3)
}

func TestMemoryClient_RecordsWritesAndErrors(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryClient()
	params := map[string]any{"slug": "x"}

	_, err := mem.ExecuteWrite(ctx, "MERGE (c:Card {slug: $slug})", params)
	require.NoError(t, err)
	params["slug"] = "mutated"

	calls := mem.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "x", calls[0].Params["slug"])

	boom := errors.New("boom")
	mem.WithError(boom)
	_, err = mem.ExecuteRead(ctx, "MATCH (n) RETURN n", nil)
	assert.ErrorIs(t, err, boom)

	require.NoError(t, mem.Close(ctx))
	assert.True(t, mem.Closed())
}

func TestNewNeo4jClient_RequiresURI(t *testing.T) {
	_, err := NewNeo4jClient(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrMissingURI)
}
