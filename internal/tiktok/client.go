package tiktok

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Upstream page reads are capped so a hostile or broken response cannot
// exhaust memory; the embedded state payload sits well under this.
const maxPageBytes = 10 << 20

// Client fetches TikTok pages over plain HTTP and normalizes their embedded
// state into entities. It holds no per-request state: every Fetch call is an
// independent, synchronous transformation, so a single Client is safe for
// unbounded concurrent use.
type Client struct {
	client    *http.Client
	baseURL   string // defaults to "https://www.tiktok.com"
	userAgent string
	proxy     string
	logger    *slog.Logger

	// Per-operation rate limiting: page fetches are throttled harder than
	// media streams, which browsers issue in bursts.
	pages *rate.Limiter
	media *rate.Limiter

	// fallbackHook, when set, observes every degraded extraction.
	// Replaceable for metrics wiring and testing.
	fallbackHook func(kind, key string)
}

// defaultTransport returns an http.Transport tuned for repeated upstream
// fetches: connection pooling, keep-alive, and TLS handshake caching.
func defaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

// NewClient creates a Client with sensible defaults.
func NewClient() *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		client: &http.Client{
			Jar:       jar,
			Timeout:   30 * time.Second,
			Transport: defaultTransport(),
		},
		baseURL:   "https://www.tiktok.com",
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
		pages:     rate.NewLimiter(rate.Every(time.Second), 4),
		media:     rate.NewLimiter(rate.Every(200*time.Millisecond), 8),
	}
}

// WithBaseURL overrides the upstream base URL. Used by tests to point the
// client at a local server.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// WithUserAgent overrides the User-Agent sent upstream.
func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// WithLogger sets the logger used for degradation warnings.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithTimeout sets the overall per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.client.Timeout = d
	}
	return c
}

// WithPageInterval sets the minimum interval between upstream page fetches.
// Zero disables page throttling.
func (c *Client) WithPageInterval(d time.Duration) *Client {
	c.pages = newLimiter(d, 4)
	return c
}

// WithMediaInterval sets the minimum interval between media streams. Zero
// disables media throttling.
func (c *Client) WithMediaInterval(d time.Duration) *Client {
	c.media = newLimiter(d, 8)
	return c
}

// WithFallbackHook registers an observer for degraded extractions; kind is
// "user", "video", or "tag" and key is the requested handle/id/name.
func (c *Client) WithFallbackHook(hook func(kind, key string)) *Client {
	c.fallbackHook = hook
	return c
}

func newLimiter(interval time.Duration, burst int) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Every(interval), burst)
}

// SetProxy routes all upstream traffic through an HTTP/HTTPS or SOCKS5
// proxy. An empty address resets to a direct transport; pooling and
// keep-alive settings are preserved either way.
func (c *Client) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		c.client.Transport = defaultTransport()
		c.proxy = ""
		return nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	base := defaultTransport()

	switch u.Scheme {
	case "http", "https":
		base.Proxy = http.ProxyURL(u)
		c.client.Transport = base
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		base.DialContext = dc.DialContext
		c.client.Transport = base
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}

	c.proxy = proxyAddr
	return nil
}

// doRequest builds and executes a GET with browser-like headers. 404 and
// 429 map to their sentinel errors; other statuses are left to the caller.
func (c *Client) doRequest(ctx context.Context, urlStr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	}

	return resp, nil
}

// fetchPage fetches one upstream HTML page, enforcing the page rate limit
// and the response size cap.
func (c *Client) fetchPage(ctx context.Context, urlStr string) ([]byte, error) {
	if err := c.pages.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.doRequest(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

// FetchUser fetches a user profile page and resolves it to a UserInfo.
// Extraction and resolution misses degrade to a fallback entity; only
// transport failures and upstream 404s return errors.
func (c *Client) FetchUser(ctx context.Context, username string) (UserInfo, error) {
	if username == "" {
		return UserInfo{}, fmt.Errorf("fetch user: username is required")
	}

	body, err := c.fetchPage(ctx, c.baseURL+"/@"+username)
	if err != nil {
		return UserInfo{}, fmt.Errorf("fetch user %q: %w", username, err)
	}

	st, ok := ExtractState(body)
	if !ok {
		c.degraded("user", username, "no embedded state payload")
		return FallbackUser(username), nil
	}
	user, ok := ResolveUser(st, username)
	if !ok {
		c.degraded("user", username, "no schema variant matched")
		return FallbackUser(username), nil
	}
	return user, nil
}

// FetchVideo fetches a video page and resolves it to a VideoInfo.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (VideoInfo, error) {
	if videoID == "" {
		return VideoInfo{}, fmt.Errorf("fetch video: id is required")
	}

	body, err := c.fetchPage(ctx, c.baseURL+"/video/"+videoID)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("fetch video %q: %w", videoID, err)
	}

	st, ok := ExtractState(body)
	if !ok {
		c.degraded("video", videoID, "no embedded state payload")
		return FallbackVideo(videoID), nil
	}
	video, ok := ResolveVideo(st, videoID)
	if !ok {
		c.degraded("video", videoID, "no schema variant matched")
		return FallbackVideo(videoID), nil
	}
	return video, nil
}

// FetchTag fetches a hashtag page and resolves it to a TagInfo.
func (c *Client) FetchTag(ctx context.Context, tagName string) (TagInfo, error) {
	if tagName == "" {
		return TagInfo{}, fmt.Errorf("fetch tag: name is required")
	}

	body, err := c.fetchPage(ctx, c.baseURL+"/tag/"+url.PathEscape(tagName))
	if err != nil {
		return TagInfo{}, fmt.Errorf("fetch tag %q: %w", tagName, err)
	}

	st, ok := ExtractState(body)
	if !ok {
		c.degraded("tag", tagName, "no embedded state payload")
		return FallbackTag(tagName), nil
	}
	tag, ok := ResolveTag(st, tagName)
	if !ok {
		c.degraded("tag", tagName, "no schema variant matched")
		return FallbackTag(tagName), nil
	}
	return tag, nil
}

// ResolveShortLink follows a vm.tiktok.com or /t/ short link through its
// redirect chain and classifies the final URL. This is the second half of
// the classify -> fetch -> re-classify flow for opaque short links.
func (c *Client) ResolveShortLink(ctx context.Context, rawURL string) (Route, error) {
	if err := c.pages.Wait(ctx); err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.doRequest(ctx, rawURL)
	if err != nil {
		return Route{}, fmt.Errorf("resolve short link %q: %w", rawURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	final := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	if route, ok := ClassifyURL(final); ok && route.Kind != RouteShortLink {
		return route, nil
	}
	return Route{}, fmt.Errorf("%w: %s", ErrBadRedirect, final)
}

// OpenMedia validates rawURL against the CDN allow-list and opens a
// streaming GET to it. The caller owns the returned body. The second return
// is the upstream content type, defaulted when absent.
func (c *Client) OpenMedia(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	if !AllowedMediaURL(rawURL) {
		return nil, "", fmt.Errorf("%w: %s", ErrMediaNotAllowed, rawURL)
	}

	if err := c.media.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.doRequest(ctx, rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("open media: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return resp.Body, contentType, nil
}

func (c *Client) degraded(kind, key, reason string) {
	c.logger.Warn("serving fallback entity", "kind", kind, "key", key, "reason", reason)
	if c.fallbackHook != nil {
		c.fallbackHook(kind, key)
	}
}
