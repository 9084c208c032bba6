package genius

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// scrapeLyrics fetches a Genius song page and extracts the lyrics text.
func (c *Client) scrapeLyrics(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	// Set realistic User-Agent to avoid blocks
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	log.Tracef("Fetching Genius lyrics page: %s", pageURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	return extractLyrics(doc), nil
}

// extractLyrics pulls text out of the lyrics containers. Genius renders
// lyrics in div[data-lyrics-container="true"] blocks with <br> line breaks;
// the legacy markup used a plain .lyrics class.
func extractLyrics(doc *goquery.Document) string {
	var parts []string

	doc.Find(`div[data-lyrics-container="true"]`).Each(func(i int, s *goquery.Selection) {
		parts = append(parts, selectionText(s))
	})

	if len(parts) == 0 {
		doc.Find(".lyrics").Each(func(i int, s *goquery.Selection) {
			parts = append(parts, strings.TrimSpace(s.Text()))
		})
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// selectionText renders a selection to plain text, turning <br> into
// newlines. goquery's Text() drops them, which glues lines together.
func selectionText(s *goquery.Selection) string {
	html, err := s.Html()
	if err != nil {
		return strings.TrimSpace(s.Text())
	}

	html = strings.ReplaceAll(html, "<br/>", "\n")
	html = strings.ReplaceAll(html, "<br>", "\n")

	fragment, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(s.Text())
	}
	return strings.TrimSpace(fragment.Text())
}
