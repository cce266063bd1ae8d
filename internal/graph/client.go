// Package graph provides the Cypher client used to persist the card catalog.
package graph

import (
	"context"
	"errors"
	"time"
)

// Client is the contract the card repository needs from a graph store.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result holds the records returned by one statement.
type Result struct {
	Records []Record
}

// First returns the first record, or nil when the result is empty.
func (r Result) First() Record {
	if len(r.Records) == 0 {
		return nil
	}
	return r.Records[0]
}

// Record maps returned column names to values.
type Record map[string]any

// Options configures the Neo4j client.
type Options struct {
	URI               string
	Database          string
	Username          string
	Password          string
	MaxConnections    int
	ConnectionTimeout time.Duration
}

// ErrMissingURI is returned when no graph URI is configured.
var ErrMissingURI = errors.New("graph URI is required")
