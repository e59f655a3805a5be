// Package sources maps bulletin links to a host-specific download
// implementation. Hosts are matched by substring against the raw link, in
// registration order, so adding support for a new file host is a matter of
// registering one more Source.
package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/tbenitez/epifetch/internal/bulletins"
	"github.com/tbenitez/epifetch/internal/downloader"
	"github.com/tbenitez/epifetch/internal/ui"
)

// Outcome is the per-bulletin result recorded in the CSV report. The values
// are the literal strings the report has always used.
type Outcome string

const (
	OutcomeSucceeded   Outcome = "Exitoso"
	OutcomeFailed      Outcome = "Fallido"
	OutcomeUnsupported Outcome = "No soportado"
)

type Source interface {
	Name() string
	Download(ctx context.Context, b bulletins.Bulletin, folder string, ph *ui.ProgressHandle) (int64, error)
}

type entry struct {
	hostPart string
	src      Source
}

type Registry struct {
	entries []entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(hostPart string, src Source) {
	r.entries = append(r.entries, entry{hostPart: hostPart, src: src})
}

// Resolve returns the first registered source whose host fragment appears in
// the link, or nil when no source supports it. Match order is registration
// order, kept deterministic on purpose.
func (r *Registry) Resolve(rawURL string) Source {
	for _, e := range r.entries {
		if strings.Contains(rawURL, e.hostPart) {
			return e.src
		}
	}
	return nil
}

func DefaultRegistry(client *http.Client, dl *downloader.Downloader) *Registry {
	r := NewRegistry()
	r.Register("drive.google.com", NewDriveSource(client, dl))
	return r
}
