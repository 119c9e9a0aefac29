package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gabriel-vasile/mimetype"

	"github.com/leofalp/jsonfit/providers/observability"
)

const (
	// DefaultTimeout bounds a whole URL fetch.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "jsonfit/1.0"
	// MaxBodySize caps how much is read from any source (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for the TLS handshake.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers.
	ResponseHeaderTimeout = 10 * time.Second
)

// Stdin is the name that selects standard input.
const Stdin = "-"

var (
	// ErrEmptyName is returned for a blank source name.
	ErrEmptyName = errors.New("source name cannot be empty")
	// ErrTooLarge is returned when a source exceeds MaxBodySize.
	ErrTooLarge = fmt.Errorf("source exceeds maximum size of %d bytes", MaxBodySize)
)

// StatusError is returned when a URL answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code fetching %s: %s", e.URL, e.Status)
}

// Kind tells where a Document came from.
type Kind string

const (
	KindFile  Kind = "file"
	KindStdin Kind = "stdin"
	KindURL   Kind = "url"
)

// Document is loaded source text.
type Document struct {
	// Name is the name passed to Load, or the final URL after redirects.
	Name string
	Kind Kind
	// MIME is the sniffed content type of the raw bytes.
	MIME string
	// Converted reports whether Text is Markdown produced from HTML.
	Converted bool
	Text      string
	// Bytes is the size of the raw content.
	Bytes int
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the URL fetch timeout. Non-positive values keep
// DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// WithStdin replaces os.Stdin as the reader behind "-".
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithHTMLConversion toggles HTML to Markdown conversion (on by default).
func WithHTMLConversion(enabled bool) Option {
	return func(l *Loader) {
		l.convertHTML = enabled
	}
}

// WithObserver traces every Load.
func WithObserver(provider observability.Provider) Option {
	return func(l *Loader) {
		l.observer = provider
	}
}

// Loader reads documents. It is safe for concurrent use as long as the
// stdin reader is only consumed once.
type Loader struct {
	timeout     time.Duration
	stdin       io.Reader
	client      *http.Client
	convertHTML bool
	observer    observability.Provider
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:     DefaultTimeout,
		stdin:       os.Stdin,
		convertHTML: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = newHTTPClient(l.timeout)
	}
	return l
}

// IsURL reports whether name is fetched over HTTP.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Load reads name and returns its text.
func (l *Loader) Load(ctx context.Context, name string) (doc Document, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Document{}, ErrEmptyName
	}

	if l.observer != nil {
		var span observability.Span
		ctx, span = l.observer.StartSpan(ctx, observability.SpanSource,
			observability.String(observability.AttrSourceName, name),
		)
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, err.Error())
			} else {
				span.SetAttributes(
					observability.String(observability.AttrSourceKind, string(doc.Kind)),
					observability.String(observability.AttrSourceMIME, doc.MIME),
					observability.Int(observability.AttrSourceBytes, doc.Bytes),
				)
				span.SetStatus(observability.StatusOK, "")
			}
			span.End()
		}()
	}

	var data []byte
	var contentType string
	switch {
	case name == Stdin:
		doc = Document{Name: name, Kind: KindStdin}
		data, err = readLimited(l.stdin)
	case IsURL(name):
		doc = Document{Name: name, Kind: KindURL}
		data, contentType, doc.Name, err = l.fetch(ctx, name)
	default:
		doc = Document{Name: name, Kind: KindFile}
		data, err = readFile(name)
	}
	if err != nil {
		return Document{}, err
	}

	detected := mimetype.Detect(data)
	doc.MIME = detected.String()
	doc.Bytes = len(data)
	doc.Text = string(data)

	if l.convertHTML && (detected.Is("text/html") || strings.HasPrefix(contentType, "text/html")) {
		markdown, convErr := htmltomarkdown.ConvertString(doc.Text)
		if convErr != nil {
			return Document{}, fmt.Errorf("failed to convert HTML to Markdown: %w", convErr)
		}
		doc.Text = markdown
		doc.Converted = true
	}
	return doc, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()
	return readLimited(f)
}

// readLimited reads up to MaxBodySize bytes and fails if there is more.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if len(data) > MaxBodySize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects (>10)")
			}
			return nil
		},
	}
}

// fetch GETs url and returns the body, the Content-Type header and the final
// URL after redirects.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", "", fmt.Errorf("request timeout or canceled: %w", err)
		}
		return nil, "", "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPStatusCode, resp.StatusCode),
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", "", &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", "", fmt.Errorf("timeout while reading response body: %w", ctx.Err())
		}
		return nil, "", "", err
	}
	return data, resp.Header.Get("Content-Type"), resp.Request.URL.String(), nil
}
