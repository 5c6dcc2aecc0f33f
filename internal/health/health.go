// Package health probes the gateway and, through it, the backend.
package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Status is the liveness of one endpoint.
type Status string

const (
	Up   Status = "up"
	Down Status = "down"
)

// Result is the outcome of probing one endpoint.
type Result struct {
	Name   string
	URL    string
	Status Status

	// Code is the HTTP status, or 0 if no response arrived.
	Code int

	// Reason explains a Down status.
	Reason string
}

// Report holds both probe results.
type Report struct {
	Gateway Result
	Backend Result
}

// Results returns the results in display order.
func (r Report) Results() []Result {
	return []Result{r.Gateway, r.Backend}
}

// Prober checks the stack's HTTP liveness endpoints.
type Prober struct {
	GatewayURL string
	BackendURL string
	Client     *http.Client
	Log        logger.Logger
}

// NewProber builds the endpoint URLs from the health config and the
// gateway port.
func NewProber(cfg config.HealthConfig, port int, log logger.Logger) *Prober {
	if log == nil {
		log = logger.Noop()
	}
	base := "http://" + net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	return &Prober{
		GatewayURL: base + cfg.GatewayPath,
		BackendURL: base + cfg.BackendPath,
		Client:     &http.Client{Timeout: cfg.Timeout},
		Log:        log,
	}
}

// Probe checks both endpoints concurrently. A failing probe never cancels
// the other one, and nothing is retried.
func (p *Prober) Probe(ctx context.Context) Report {
	var report Report
	var g errgroup.Group

	g.Go(func() error {
		report.Gateway = p.check(ctx, "gateway", p.GatewayURL)
		return nil
	})
	g.Go(func() error {
		report.Backend = p.check(ctx, "backend", p.BackendURL)
		return nil
	})
	_ = g.Wait()

	return report
}

func (p *Prober) check(ctx context.Context, name, url string) Result {
	res := Result{Name: name, URL: url, Status: Down}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		res.Reason = reason(err)
		p.Log.Debug("probe %s: %v", url, err)
		return res
	}
	defer resp.Body.Close()

	p.Log.Debug("probe %s: %d in %s", url, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	res.Code = resp.StatusCode
	if resp.StatusCode == http.StatusOK {
		res.Status = Up
		return res
	}
	res.Reason = fmt.Sprintf("HTTP %d", resp.StatusCode)
	return res
}

func reason(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timed out"
	case isRefused(err):
		return "connection refused"
	default:
		return err.Error()
	}
}

func isRefused(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
