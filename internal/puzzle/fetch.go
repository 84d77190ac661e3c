package puzzle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"text/template"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPError reports a non-200 response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetcher downloads puzzle inputs.
type Fetcher struct {
	// URLTemplate is a text/template with .Number and .Crate,
	// e.g. "https://example.com/puzzles/{{.Number}}/input".
	URLTemplate string
	Session     string
	UserAgent   string
	httpClient  *http.Client
	tmpl        *template.Template
}

// NewFetcher parses urlTemplate and returns a Fetcher.
func NewFetcher(urlTemplate, session, userAgent string) (*Fetcher, error) {
	tmpl, err := template.New("input_url").Option("missingkey=error").Parse(urlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing input URL template: %w", err)
	}
	return &Fetcher{
		URLTemplate: urlTemplate,
		Session:     session,
		UserAgent:   userAgent,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		tmpl:        tmpl,
	}, nil
}

// URL renders the input URL for a problem.
func (f *Fetcher) URL(number int) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Number int
		Crate  string
	}{number, fmt.Sprintf("problem%02d", number)}
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering input URL: %w", err)
	}
	return buf.String(), nil
}

// Fetch downloads the input for problem number.
func (f *Fetcher) Fetch(ctx context.Context, number int) ([]byte, error) {
	url, err := f.URL(number)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	if f.Session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: f.Session})
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching input: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
