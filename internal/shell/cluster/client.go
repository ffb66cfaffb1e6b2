// Package cluster submits populated function batches to the cluster
// controller API.
package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fnship/fnship/internal/core/domain"
)

// =============================================================================
// Cluster Client
// =============================================================================

// DefaultNamespace is used when the provider sets none.
const DefaultNamespace = "default"

// Client talks to the cluster controller over HTTP. It implements the
// engine's Submitter contract.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the controller at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger.With("component", "cluster"),
	}
}

// Submit upserts every populated function under the target namespace. The
// batch is all-or-nothing from the caller's perspective: the first function
// whose upsert fails permanently fails the submission. Retry settings come
// through opts untouched; this client is the first place they are
// interpreted.
func (c *Client) Submit(ctx context.Context, fns []domain.PopulatedFunction, runtime, serviceName string, opts domain.SubmitOptions) error {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	deploymentID := uuid.NewString()

	c.logger.Info("submitting deployment",
		"deployment_id", deploymentID,
		"service", serviceName,
		"namespace", namespace,
		"functions", len(fns),
	)

	for _, fn := range fns {
		req := submitRequest{
			DeploymentID: deploymentID,
			Service:      serviceName,
			Runtime:      runtime,
			Force:        opts.Force,
			Function:     buildSpec(fn, opts),
		}
		if opts.Verbose {
			c.logger.Info("submitting function",
				"deployment_id", deploymentID,
				"function", fn.ID,
				"events", len(fn.NormalizedEvents),
				"has_deps", fn.HasDeps,
			)
		}
		if err := c.upsert(ctx, namespace, fn.ID, req, opts.Retry); err != nil {
			return err
		}
	}

	c.logger.Info("deployment submitted",
		"deployment_id", deploymentID,
		"service", serviceName,
		"functions", len(fns),
	)
	return nil
}

// upsert PUTs one function record, retrying transport failures and 5xx
// responses up to the configured limit.
func (c *Client) upsert(ctx context.Context, namespace, name string, req submitRequest, retry domain.RetryConfig) error {
	body, err := json.Marshal(req)
	if err != nil {
		return &SubmitError{Function: name, Attempts: 0, Err: err}
	}
	url := fmt.Sprintf("%s/api/v1/namespaces/%s/functions/%s", c.baseURL, namespace, name)

	attempts := retry.RetryLimit + 1
	var lastErr error
	var lastStatus int

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return &SubmitError{Function: name, Status: lastStatus, Attempts: attempt - 1, Err: ctx.Err()}
			case <-time.After(retry.RetryInterval):
			}
			c.logger.Debug("retrying function submit",
				"function", name,
				"attempt", attempt,
				"last_status", lastStatus,
			)
		}

		status, err := c.put(ctx, url, body)
		if err == nil && status < 300 {
			return nil
		}

		lastErr, lastStatus = err, status
		if err == nil {
			lastErr = fmt.Errorf("unexpected status %d", status)
		}

		// 4xx (except 429) is a definitive rejection; retrying cannot help.
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			return &SubmitError{Function: name, Status: status, Attempts: attempt, Err: ErrSubmitRejected}
		}
	}

	return &SubmitError{
		Function: name,
		Status:   lastStatus,
		Attempts: attempts,
		Err:      fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr),
	}
}

func (c *Client) put(ctx context.Context, url string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
