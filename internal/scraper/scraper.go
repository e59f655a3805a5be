// Package scraper extracts bulletin rows from the listing page. The page is
// a plain HTML table: the first cell of each row carries the bulletin name,
// the third one links to the hosted file.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tbenitez/epifetch/internal/bulletins"
)

type Scraper struct {
	client *http.Client
	debug  bool
}

func New(c *http.Client, debug bool) *Scraper {
	return &Scraper{
		client: c,
		debug:  debug,
	}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// GetBulletins returns one entry per table row that has more than two cells
// and a hyperlink in the third one, in document order. Rows of any other
// shape (headers, spacers, rows without a link) are skipped silently.
func (s *Scraper) GetBulletins(ctx context.Context, pageURL string) ([]bulletins.Bulletin, error) {
	doc, err := s.fetchDOM(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var out []bulletins.Bulletin

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() <= 2 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())

		link := cells.Eq(2).Find("a[href]").First()
		if link.Length() == 0 {
			return
		}

		href, _ := link.Attr("href")

		if s.debug {
			fmt.Printf("[debug] row: %q -> %s\n", name, href)
		}

		out = append(out, bulletins.Bulletin{
			Name: name,
			URL:  href,
		})
	})

	return out, nil
}
