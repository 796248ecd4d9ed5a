package listdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"golang.org/x/time/rate"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxRedirects       = 5
	// maxDocumentBytes caps a single manifest or level document.
	maxDocumentBytes = 4 << 20
)

// HTTPSource reads the list from a static host, e.g. the published data
// directory of the list site.
type HTTPSource struct {
	baseURL  string
	manifest string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewHTTPSource creates an HTTPSource rooted at baseURL. requestsPerSecond <= 0
// disables throttling; burst applies only when throttling is on.
func NewHTTPSource(baseURL, manifest string, timeout time.Duration, requestsPerSecond float64, burst int) *HTTPSource {
	if manifest == "" {
		manifest = DefaultManifest
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}

	return &HTTPSource{
		baseURL:  baseURL,
		manifest: manifest,
		client:   newFetchClient(timeout),
		limiter:  limiter,
	}
}

// newFetchClient returns an *http.Client with a timeout and a redirect limit.
func newFetchClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

func (s *HTTPSource) Kind() string { return "http" }

// Manifest fetches <base>/<manifest>.
func (s *HTTPSource) Manifest(ctx context.Context) ([]string, error) {
	var paths []string
	if err := s.getJSON(ctx, s.manifest, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Level fetches <base>/<path>.json.
func (s *HTTPSource) Level(ctx context.Context, path string) (listdomain.Level, error) {
	var level listdomain.Level
	if err := s.getJSON(ctx, path+".json", &level); err != nil {
		return listdomain.Level{}, err
	}
	return level, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, name string, v any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	target, err := url.JoinPath(s.baseURL, name)
	if err != nil {
		return fmt.Errorf("build url for %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "demonlist/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentBytes))
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
