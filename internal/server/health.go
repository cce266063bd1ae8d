package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/graph"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// ProbeFunc adapts a function to HealthService.
type ProbeFunc func(ctx context.Context) error

func (f ProbeFunc) Probe(ctx context.Context) error { return f(ctx) }

// GraphHealthService verifies graph connectivity as part of health checks.
// A nil client reports healthy so file and HTTP catalogs need no graph.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}

// NamedProbe labels a dependency check.
type NamedProbe struct {
	Name  string
	Check HealthService
}

// Checks runs every probe in order and joins the failures, each prefixed
// with its probe name.
type Checks []NamedProbe

func (c Checks) Probe(ctx context.Context) error {
	var errs []error
	for _, p := range c {
		if p.Check == nil {
			continue
		}
		if err := p.Check.Probe(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
		}
	}
	return errors.Join(errs...)
}
