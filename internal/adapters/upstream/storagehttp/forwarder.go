package storagehttp

import (
	"context"
	"errors"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// hopHeaders are meaningful for a single connection only (RFC 9110 section 7.6.1)
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Forwarder passes gateway requests through to the storage service
type Forwarder struct {
	client          *http.Client
	baseURL         *url.URL
	stripHopHeaders bool
	logger          *slog.Logger
}

// NewForwarder creates a Forwarder for the storage service configured in cfg
func NewForwarder(cfg config.StreamConfig, logger *slog.Logger) (*Forwarder, error) {
	baseURL, err := url.Parse(cfg.StorageURL())
	if err != nil {
		return nil, fmt.Errorf("invalid storage url: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	// only the wait for response headers is bounded, long bodies must not be cut
	transport.ResponseHeaderTimeout = cfg.ForwardTimeout
	// bytes and Content-Length are relayed exactly as the storage service sends them
	transport.DisableCompression = true

	return &Forwarder{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:         baseURL,
		stripHopHeaders: cfg.StripHopHeaders,
		logger:          logger,
	}, nil
}

// Forward sends inbound, headers and body included, to GET /video?path= on the storage service.
// The caller owns the response body.
func (f *Forwarder) Forward(ctx context.Context, inbound *http.Request, path string) (*http.Response, error) {
	target := *f.baseURL
	target.Path = strings.TrimSuffix(target.Path, "/") + "/video"
	target.RawQuery = url.Values{"path": []string{path}}.Encode()

	body := inbound.Body
	if inbound.ContentLength == 0 {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, inbound.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("could not build upstream request: %w", err)
	}
	req.Header = inbound.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.ContentLength = inbound.ContentLength
	if f.stripHopHeaders {
		removeHopHeaders(req.Header)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	return resp, nil
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		var opErr *net.OpError
		if urlErr.Timeout() || errors.As(urlErr.Err, &opErr) {
			return fmt.Errorf("%w: storage service: %w", domain.ErrUnavailable, err)
		}
	}
	return fmt.Errorf("%w: storage service: %w", domain.ErrUpstreamProtocol, err)
}

func removeHopHeaders(h http.Header) {
	// headers named by Connection are hop-by-hop too
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		h.Del(name)
	}
}
