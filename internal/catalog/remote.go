package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

const maxRemotePayloadBytes = 16 << 20

// RemoteOptions configures the external cards API.
type RemoteOptions struct {
	URL string
	// APIKey is sent under KeyHeader when set, as RapidAPI headers when Host
	// is set, and as a bearer token otherwise.
	APIKey    string
	Host      string
	KeyHeader string
	Timeout   time.Duration
}

// RemoteSource fetches the catalog from an external cards API.
type RemoteSource struct {
	opts   RemoteOptions
	client *http.Client
}

// NewRemoteSource returns nil when no URL is configured.
func NewRemoteSource(opts RemoteOptions) *RemoteSource {
	if opts.URL == "" {
		return nil
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteSource{
		opts: opts,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (r *RemoteSource) Name() string { return SourceExternal }

func (r *RemoteSource) Load(ctx context.Context) ([]domain.Card, error) {
	if _, err := url.ParseRequestURI(r.opts.URL); err != nil {
		return nil, fmt.Errorf("invalid cards API url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build cards API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call cards API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: cards API returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRemotePayloadBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode cards API response: %w", err)
	}
	cards := NormalizeRecords(ExtractCardsArray(payload))
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: cards API returned no cards", ErrSourceUnavailable)
	}
	return cards, nil
}

func (r *RemoteSource) authorize(req *http.Request) {
	key := r.opts.APIKey
	switch {
	case key == "":
	case r.opts.KeyHeader != "":
		req.Header.Set(r.opts.KeyHeader, key)
	case r.opts.Host != "":
		req.Header.Set("x-rapidapi-host", r.opts.Host)
		req.Header.Set("x-rapidapi-key", key)
	default:
		req.Header.Set("Authorization", "Bearer "+key)
	}
}
