package downloader

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/tbenitez/epifetch/internal/ui"
)

type Downloader struct {
	client      *http.Client
	debug       bool
	keepPartial bool
}

func New(c *http.Client, debug bool, keepPartial bool) *Downloader {
	return &Downloader{
		client:      c,
		debug:       debug,
		keepPartial: keepPartial,
	}
}

// Fetch retrieves one resource into output. The body is streamed to
// output+".part" and renamed into place only after a complete copy, so a
// failed transfer never leaves a half-written file under the final name
// (unless keepPartial asks for the .part to stay for inspection).
func (d *Downloader) Fetch(ctx context.Context, u, output string, ph *ui.ProgressHandle) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Accept", "application/pdf,application/octet-stream,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-AR,es;q=0.9,en;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}

	var bodyCloseErr error
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && bodyCloseErr == nil {
			bodyCloseErr = cerr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if resp.ContentLength > 0 {
		ph.SetTotal(resp.ContentLength)
	}

	part := output + ".part"

	f, err := os.Create(part)
	if err != nil {
		return 0, err
	}

	written, err := copyWithProgress(f, resp.Body, func(done int64) {
		ph.Update(done)
	})

	cerr := f.Close()
	if err == nil {
		err = cerr
	}

	if err != nil {
		if !d.keepPartial {
			_ = os.Remove(part)
		}
		return written, err
	}

	if err := os.Rename(part, output); err != nil {
		if !d.keepPartial {
			_ = os.Remove(part)
		}
		return written, err
	}

	return written, bodyCloseErr
}
