package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apierrors "github.com/diogo/querychat/internal/errors"
)

// DefaultTimeout bounds a single round trip when no timeout is configured
const DefaultTimeout = 120 * time.Second

const tracerName = "github.com/diogo/querychat/internal/api"

// QueryClientInterface is what the chat controller needs from the backend client
type QueryClientInterface interface {
	Query(ctx context.Context, question string) Outcome
	Endpoint() string
	Close()
}

// QueryClient posts questions to the backend's /query endpoint
type QueryClient struct {
	httpClient tls_client.HttpClient
	endpoint   string
	timeout    time.Duration
	insecure   bool
	userAgent  string
	logger     *zap.Logger
	tracer     trace.Tracer
	mu         sync.RWMutex
	closed     bool
}

// Ensure QueryClient implements QueryClientInterface
var _ QueryClientInterface = (*QueryClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*QueryClient)

// WithHTTPClient injects the HTTP client (mainly for tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *QueryClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the transport timeout for a round trip
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *QueryClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification
func WithInsecureSkipVerify(enabled bool) ClientOption {
	return func(c *QueryClient) {
		c.insecure = enabled
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *QueryClient) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *QueryClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for request spans
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(c *QueryClient) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// NewClient creates a QueryClient for the backend at serverURL
func NewClient(serverURL string, opts ...ClientOption) (*QueryClient, error) {
	endpoint, err := ResolveEndpoint(serverURL)
	if err != nil {
		return nil, err
	}

	client := &QueryClient{
		endpoint:  endpoint,
		timeout:   DefaultTimeout,
		userAgent: "querychat",
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		if client.insecure {
			options = append(options, tls_client.WithInsecureSkipVerify())
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// ResolveEndpoint joins the /query path onto a server base URL
func ResolveEndpoint(serverURL string) (string, error) {
	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" {
		return "", fmt.Errorf("server URL cannot be empty")
	}

	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: missing host", serverURL)
	}

	return u.JoinPath(EndpointQuery).String(), nil
}

// Endpoint returns the full URL questions are posted to
func (c *QueryClient) Endpoint() string {
	return c.endpoint
}

// Close releases idle connections. Further queries settle as transport failures.
func (c *QueryClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *QueryClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// queryRequest is the JSON body posted to /query
type queryRequest struct {
	Question string `json:"question"`
}

// Query posts question and categorizes the result. It never returns an error;
// every failure is carried in the Outcome.
func (c *QueryClient) Query(ctx context.Context, question string) Outcome {
	ctx, span := c.tracer.Start(ctx, "POST "+EndpointQuery, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.url", c.endpoint),
		attribute.Int("querychat.question_length", len(question)),
	)

	start := time.Now()
	out := c.doQuery(ctx, question)
	out.Duration = time.Since(start)

	span.SetAttributes(attribute.String("querychat.outcome", out.Kind.String()))
	if out.StatusCode > 0 {
		span.SetAttributes(attribute.Int("http.status_code", out.StatusCode))
	}

	if out.Err != nil {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Kind.String())
		c.logger.Warn("query failed",
			zap.String("endpoint", c.endpoint),
			zap.String("outcome", out.Kind.String()),
			zap.Int("status", out.StatusCode),
			zap.Duration("duration", out.Duration),
			zap.Error(out.Err),
		)
	} else {
		c.logger.Debug("query answered",
			zap.String("endpoint", c.endpoint),
			zap.Int("status", out.StatusCode),
			zap.Int("answer_length", len(out.Answer)),
			zap.Duration("duration", out.Duration),
		)
	}

	return out
}

func (c *QueryClient) doQuery(ctx context.Context, question string) Outcome {
	if c.IsClosed() {
		return TransportFailure(apierrors.NewNetworkErrorWithEndpoint("query", c.endpoint, fmt.Errorf("client is closed")))
	}

	payload, err := json.Marshal(queryRequest{Question: question})
	if err != nil {
		return TransportFailure(fmt.Errorf("failed to marshal question: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return TransportFailure(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TransportFailure(c.classifyTransportError(ctx, err))
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A failed read still settles as a server error with the generic message
		body, _, _ := readLimited(resp.Body, maxErrorBodySize)
		message := extractErrorMessage(body)

		detail := message
		if detail == "" {
			detail = "query failed"
		}
		return ServerFailure(resp.StatusCode, message,
			apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, detail, string(body)))
	}

	body, truncated, err := readLimited(resp.Body, maxAnswerBodySize)
	if err != nil {
		return TransportFailure(apierrors.NewNetworkErrorWithEndpoint("read answer", c.endpoint, err))
	}
	if truncated {
		return Malformed(resp.StatusCode, fmt.Errorf("%w: %w", apierrors.ErrAnswerTooLarge,
			apierrors.NewParseError(fmt.Sprintf("body exceeds %d bytes", maxAnswerBodySize), PathAnswer)))
	}

	answer, err := parseAnswer(body)
	if err != nil {
		return Malformed(resp.StatusCode, err)
	}

	return Answered(resp.StatusCode, answer)
}

// classifyTransportError maps a failed Do into the typed error taxonomy
func (c *QueryClient) classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(c.endpoint)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(c.endpoint)
	}

	return apierrors.NewNetworkErrorWithEndpoint("query", c.endpoint, err)
}

// parseAnswer extracts the answer string from a success body
func parseAnswer(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	result := gjson.GetBytes(body, PathAnswer)
	if !result.Exists() {
		return "", apierrors.NewParseError("answer field missing", PathAnswer)
	}
	if result.Type != gjson.String {
		return "", apierrors.NewParseError(fmt.Sprintf("answer is %s, not a string", result.Type), PathAnswer)
	}

	return result.String(), nil
}

// extractErrorMessage reads the "error" field of a failure body the way the
// browser widget interpolated it: falsy values yield "" so the caller falls back,
// anything else is stringified. A truthy value that stringifies to "" (such as
// an empty array) also falls back, since "" is how the fallback is signalled.
func extractErrorMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}

	result := gjson.GetBytes(body, PathError)
	switch result.Type {
	case gjson.String, gjson.True, gjson.JSON:
		return jsString(result)
	case gjson.Number:
		if result.Float() == 0 {
			return ""
		}
		return jsString(result)
	default:
		return ""
	}
}

// jsString converts a JSON value to text with JavaScript's String() rules
func jsString(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return jsNumber(r.Float())
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	case gjson.Null:
		return "null"
	case gjson.JSON:
		if !r.IsArray() {
			return "[object Object]"
		}
		items := r.Array()
		parts := make([]string, len(items))
		for i, item := range items {
			// null elements join as empty strings
			if item.Type != gjson.Null {
				parts[i] = jsString(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// jsNumber formats f like Number.prototype.toString
func jsNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// readLimited reads at most limit bytes and reports whether r held more
func readLimited(r io.Reader, limit int64) ([]byte, bool, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if int64(len(body)) > limit {
		return body[:limit], true, err
	}
	return body, false, err
}
