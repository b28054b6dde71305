package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"gopkg.in/resty.v1"

	"elliott/internal/core"
	"elliott/internal/ports"
	"elliott/internal/shared"
	"elliott/internal/types"
)

const DefaultErrataURL = "https://errata.devel.redhat.com"

const defaultErrataTimeout = 60 * time.Second
const defaultErrataRetryDelay = 200 * time.Millisecond
const maxErrataRetryDelay = 2 * time.Second

const (
	errataAddBugPath  = "/api/v1/erratum/%s/add_bug"
	errataBuildsPath  = "/api/v1/erratum/%s/builds"
	errataRefreshPath = "/api/v1/bug/refresh"
)

type ErrataConfig struct {
	Endpoint     string
	TimeoutSec   int
	Retries      int
	RetryDelayMs int
	Credentials  ports.CredentialPort
}

// ErrataClient is the Errata Tool REST adapter. Retries are off unless
// Retries > 0, and only transport errors, 429 and 5xx are retried.
type ErrataClient struct {
	Endpoint    string
	Timeout     time.Duration
	Retries     int
	RetryDelay  time.Duration
	Credentials ports.CredentialPort
	client      *resty.Client
}

func NewErrataClient(cfg ErrataConfig) ErrataClient {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultErrataURL
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultErrataTimeout
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	retryDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	if retryDelay <= 0 {
		retryDelay = defaultErrataRetryDelay
	}
	credentials := cfg.Credentials
	if credentials == nil {
		credentials = NoCredentials{}
	}
	return ErrataClient{
		Endpoint:    endpoint,
		Timeout:     timeout,
		Retries:     retries,
		RetryDelay:  retryDelay,
		Credentials: credentials,
		client:      resty.NewWithClient(&http.Client{Timeout: timeout}),
	}
}

func (c ErrataClient) RefreshBugs(ctx context.Context, bugs []types.BugID) error {
	payload, err := core.RefreshPayload(bugs)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, errataRefreshPath, payload)
	return err
}

func (c ErrataClient) AddBug(ctx context.Context, advisory string, bug types.BugID) error {
	if strings.TrimSpace(advisory) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("advisory is empty")
	}
	payload, err := core.AddBugPayload(bug)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, fmt.Sprintf(errataAddBugPath, url.PathEscape(advisory)), payload)
	return err
}

func (c ErrataClient) FetchBuilds(ctx context.Context, advisory string) ([]byte, error) {
	if strings.TrimSpace(advisory) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("advisory is empty")
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf(errataBuildsPath, url.PathEscape(advisory)), nil)
}

func (c ErrataClient) do(ctx context.Context, method string, path string, body []byte) ([]byte, error) {
	target := c.Endpoint + path
	var result []byte
	attempt := 0
	operation := func() error {
		attempt++
		data, retry, err := c.doOnce(ctx, method, target, body)
		if err == nil {
			result = data
			return nil
		}
		if !retry {
			return backoff.Permanent(err)
		}
		log.Debug().
			Err(err).
			Str("url", target).
			Int("attempt", attempt).
			Msg("errata request failed")
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), uint64(c.Retries)), ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

func (c ErrataClient) doOnce(ctx context.Context, method string, target string, body []byte) ([]byte, bool, error) {
	req := c.client.R().SetContext(ctx)
	authorization, err := c.Credentials.Authorization(ctx, target)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeUnauthenticated).
			WithMsg("failed to obtain errata credentials").
			WithCause(err)
	}
	if authorization != "" {
		req.SetHeader("Authorization", authorization)
	}
	req.SetHeader("Accept", "application/json")
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}
	resp, err := req.Execute(method, target)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, errbuilder.New().
				WithCode(errbuilder.CodeCanceled).
				WithMsg("errata request canceled").
				WithCause(err)
		}
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("errata request failed").
			WithCause(err)
	}
	if resp.IsSuccess() {
		return resp.Body(), false, nil
	}
	return nil, retryableStatus(resp.StatusCode()), statusError(method, target, resp.StatusCode(), string(resp.Body()))
}

func (c ErrataClient) newBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.RetryDelay
	bo.MaxInterval = maxErrataRetryDelay
	return bo
}

func retryableStatus(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

func statusError(method string, target string, status int, body string) error {
	code := errbuilder.CodeInternal
	switch {
	case status == http.StatusUnauthorized:
		code = errbuilder.CodeUnauthenticated
	case status == http.StatusForbidden:
		code = errbuilder.CodePermissionDenied
	case status == http.StatusNotFound:
		code = errbuilder.CodeNotFound
	case retryableStatus(status):
		code = errbuilder.CodeUnavailable
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("errata %s request failed", strings.ToLower(method))).
		WithCause(shared.HTTPStatusErrorWithBody(status, target, strings.TrimSpace(body)))
}

var _ ports.AdvisoryPort = ErrataClient{}
