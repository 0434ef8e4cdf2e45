// Package smoke checks that a deployed web application answers over HTTP:
// the home page renders and static files are served.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creastat/circuits/internal/retry"
)

const (
	defaultAttempts       = 3
	defaultRetryDelay     = time.Second
	defaultRequestTimeout = 30 * time.Second
	maxBodyBytes          = 10 << 20
)

// Config describes one probe run against a running application.
type Config struct {
	BaseURL        string
	Attempts       int           // home page attempts on transport errors; default 3
	RetryDelay     time.Duration // pause between attempts; default 1s
	RequestTimeout time.Duration // per request; default 30s
	HomeMarkers    []string      // substrings the home page body must contain
	StaticPaths    []string      // paths relative to BaseURL that must serve content
}

// Result holds the timings of a successful run.
type Result struct {
	Attempts    int
	HomeStatus  int
	StartupTime time.Duration // until the home page first answered
	CheckTime   time.Duration // content and static file checks
	TotalTime   time.Duration
}

// Prober runs the smoke checks.
type Prober struct {
	cfg    Config
	base   *url.URL
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Prober.
type Option func(*Prober)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// WithLogger sets the logger for progress and timing output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// New validates cfg, fills defaults and returns a Prober.
func New(cfg Config, opts ...Option) (*Prober, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL must be http or https, got %q", ErrInvalidConfig, cfg.BaseURL)
	}
	// Static paths resolve below the base path, not beside its last segment.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if cfg.Attempts < 0 || cfg.RetryDelay < 0 || cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("%w: attempts and durations must not be negative", ErrInvalidConfig)
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	p := &Prober{
		cfg:    cfg,
		base:   base,
		client: http.DefaultClient,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type page struct {
	status int
	body   string
}

// Run requests the home page (retrying transport failures), verifies its
// content, then verifies every static path.
func (p *Prober) Run(ctx context.Context) (*Result, error) {
	start := p.now()
	p.logger.InfoContext(ctx, "starting smoke run",
		"base_url", p.cfg.BaseURL,
		"attempts", p.cfg.Attempts,
		"static_paths", len(p.cfg.StaticPaths))

	attempts := 0
	policy := retry.Policy{
		MaxAttempts: p.cfg.Attempts,
		Backoff:     p.cfg.RetryDelay,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			p.logger.WarnContext(ctx, "failed to complete the request, retrying",
				"attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	home, err := retry.Do(ctx, policy, classify, func(ctx context.Context) (page, error) {
		attempts++
		return p.get(ctx, p.base.String())
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "home page unreachable", "attempts", attempts, "error", err)
		return nil, fmt.Errorf("request home page: %w", err)
	}

	initialized := p.now()
	p.logger.InfoContext(ctx, "application answered",
		"startup_seconds", initialized.Sub(start).Seconds(), "attempts", attempts)

	if err := p.verifyHome(home); err != nil {
		p.logger.ErrorContext(ctx, "home page check failed", "error", err)
		return nil, err
	}
	if err := p.verifyStatic(ctx); err != nil {
		p.logger.ErrorContext(ctx, "static content check failed", "error", err)
		return nil, err
	}

	done := p.now()
	res := &Result{
		Attempts:    attempts,
		HomeStatus:  home.status,
		StartupTime: initialized.Sub(start),
		CheckTime:   done.Sub(initialized),
		TotalTime:   done.Sub(start),
	}
	p.logger.InfoContext(ctx, "smoke run passed",
		"checks_seconds", res.CheckTime.Seconds(),
		"total_seconds", res.TotalTime.Seconds())
	return res, nil
}

func (p *Prober) verifyHome(home page) error {
	if home.status != http.StatusOK {
		return fmt.Errorf("%w: home page returned %d", ErrUnexpectedStatus, home.status)
	}
	for _, marker := range p.cfg.HomeMarkers {
		if !strings.Contains(home.body, marker) {
			return fmt.Errorf("%w: home page lacks %q", ErrMissingContent, marker)
		}
	}
	return nil
}

func (p *Prober) verifyStatic(ctx context.Context) error {
	for _, path := range p.cfg.StaticPaths {
		ref, err := url.Parse(strings.TrimPrefix(path, "/"))
		if err != nil {
			return fmt.Errorf("%w: static path %q: %w", ErrInvalidConfig, path, err)
		}
		target := p.base.ResolveReference(ref).String()

		res, err := p.get(ctx, target)
		if err != nil {
			return fmt.Errorf("request %s: %w", target, err)
		}
		if res.status != http.StatusOK {
			return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, target, res.status)
		}
		if res.body == "" {
			return fmt.Errorf("%w: %s", ErrEmptyContent, target)
		}
		p.logger.DebugContext(ctx, "static content served", "url", target, "bytes", len(res.body))
	}
	return nil
}

func (p *Prober) get(ctx context.Context, target string) (page, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return page{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return page{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return page{}, fmt.Errorf("read body: %w", err)
	}
	return page{status: resp.StatusCode, body: string(body)}, nil
}

// classify retries transport failures. Cancellation of the run itself is
// permanent.
func classify(err error) retry.Action {
	if errors.Is(err, context.Canceled) {
		return retry.Stop
	}
	return retry.Retry
}
