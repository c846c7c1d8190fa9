// Package httpclient executes one request set under a bounded timeout
// and normalizes every outcome into a single Result shape. Network
// failure is an expected outcome here, never a Go error: callers
// always receive a resolved Result.
package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"syscall"
	"time"

	"github.com/nattoujam/tcurl/internal/requestset"
)

type Options struct {
	Timeout         time.Duration
	FollowRedirects bool
}

const DefaultTimeout = 10 * time.Second

type FailureKind string

const (
	FailureTimeout    FailureKind = "timeout"
	FailureConnection FailureKind = "connection"
	FailureProtocol   FailureKind = "protocol"
)

func (k FailureKind) Label() string {
	switch k {
	case FailureTimeout:
		return "Timeout"
	case FailureConnection:
		return "Connection Error"
	case FailureProtocol:
		return "Protocol Error"
	default:
		return string(k)
	}
}

type Failure struct {
	Kind    FailureKind
	Message string
}

// Result is the normalized outcome of one attempt. Failure is nil on
// success; the response fields are zero on failure. Elapsed is always
// populated.
type Result struct {
	Status     string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Elapsed    time.Duration
	Failure    *Failure
}

func (r *Result) OK() bool {
	return r != nil && r.Failure == nil
}

type Client struct {
	jar         http.CookieJar
	httpFactory func(Options) (*http.Client, error)
}

func NewClient() *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{jar: jar}
	c.httpFactory = c.buildHTTPClient
	return c
}

// SetHTTPFactory allows callers to override how http.Client instances
// are created. Passing nil restores the default factory.
func (c *Client) SetHTTPFactory(factory func(Options) (*http.Client, error)) {
	if factory == nil {
		factory = c.buildHTTPClient
	}
	c.httpFactory = factory
}

func (c *Client) buildHTTPClient(opts Options) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	client := &http.Client{Transport: transport, Jar: c.jar}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client, nil
}

// Execute runs the already-substituted request. The timeout is
// enforced here through the derived context; cancellation from the
// caller resolves as a timeout failure so the session is never left
// with an unresolved attempt.
func (c *Client) Execute(
	ctx context.Context,
	rs *requestset.RequestSet,
	body string,
	opts Options,
) *Result {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	fail := func(kind FailureKind, err error) *Result {
		return &Result{
			Elapsed: time.Since(start),
			Failure: &Failure{Kind: kind, Message: failureMessage(err)},
		}
	}

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, rs.Method, rs.URL, reqBody)
	if err != nil {
		return fail(FailureConnection, err)
	}
	for _, header := range rs.Headers {
		httpReq.Header.Set(header.Name, header.Value)
	}

	client, err := c.httpFactory(opts)
	if err != nil {
		return fail(FailureConnection, err)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return fail(classify(err), err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		// Bytes were already received, so a mid-read failure is a peer
		// problem unless the deadline fired during the transfer.
		kind := FailureProtocol
		if classify(err) == FailureTimeout {
			kind = FailureTimeout
		}
		return fail(kind, err)
	}

	return &Result{
		Status:     httpResp.Status,
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header.Clone(),
		Body:       respBody,
		Elapsed:    time.Since(start),
	}
}

// classify maps a transport error onto the failure taxonomy: deadline
// or cancellation resolves as timeout, failure to reach the peer as a
// connection error, anything after the connection as protocol.
func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailureConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return FailureConnection
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return FailureConnection
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return FailureConnection
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return FailureConnection
	}

	return FailureProtocol
}

func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
