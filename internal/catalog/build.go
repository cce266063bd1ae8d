package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Catalog source modes.
const (
	ModeAuto  = "auto"
	ModeFile  = "file"
	ModeHTTP  = "http"
	ModeGraph = "graph"
)

// BuildOptions selects and configures the catalog source.
type BuildOptions struct {
	Mode   string
	File   string
	Remote RemoteOptions
}

// Build returns the source for opts.Mode. repo is only required for the graph
// mode. In auto mode the remote API is preferred when configured, with the
// local file as fallback.
func Build(opts BuildOptions, repo CardLister, logger *zap.Logger) (Source, error) {
	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	if mode == "" {
		mode = ModeAuto
	}

	switch mode {
	case ModeFile:
		return NewFileSource(opts.File), nil
	case ModeHTTP:
		remote := NewRemoteSource(opts.Remote)
		if remote == nil {
			return nil, fmt.Errorf("%w: http catalog mode requires CREDIT_CARDS_API_URL", ErrSourceUnavailable)
		}
		return remote, nil
	case ModeGraph:
		if repo == nil {
			return nil, fmt.Errorf("%w: graph catalog mode requires a graph connection", ErrSourceUnavailable)
		}
		return NewGraphSource(repo), nil
	case ModeAuto:
		file := NewFileSource(opts.File)
		if remote := NewRemoteSource(opts.Remote); remote != nil {
			return NewFallbackSource(remote, file, logger), nil
		}
		return file, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", opts.Mode)
	}
}
