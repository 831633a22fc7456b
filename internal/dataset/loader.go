package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"shelfboard/backend/internal/csvtable"
)

// Loader fetches one delimited dataset and parses it into rows. The source is
// an http(s) URL or a local file path.
type Loader struct {
	name   string
	source string
	client *http.Client
}

func NewLoader(name, source string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{name: name, source: source, client: client}
}

// Load returns the parsed rows. An unavailable source is not an error to the
// caller: the failure is logged and an empty slice comes back, so dashboards
// render zeroed panels instead of failing the request.
func (l *Loader) Load(ctx context.Context) []csvtable.Row {
	text, err := l.fetch(ctx)
	if err != nil {
		log.Printf("[dataset] %s source unavailable (%v), continuing with empty data", l.name, err)
		return []csvtable.Row{}
	}
	return csvtable.Parse(text)
}

func (l *Loader) fetch(ctx context.Context) (string, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
		if err != nil {
			return "", fmt.Errorf("build request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("fetch: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return "", fmt.Errorf("fetch: status %d", resp.StatusCode)
		}
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(payload), nil
	}

	payload, err := os.ReadFile(l.source)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(payload), nil
}
