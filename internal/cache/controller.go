package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Version is the current cache container tag. Bumping it supersedes every
// previously populated container on activation.
const Version = "sticky-notes-v2"

// ProductionBasePath is the hosting subpath used outside local development.
const ProductionBasePath = "/sticky-note-scribe-mobile"

// denyPrefixes lists request URL prefixes that are never intercepted.
var denyPrefixes = []string{
	"chrome-extension://",
	"moz-extension://",
	"safari-web-extension://",
}

// deniedHost is an external domain excluded from interception.
const deniedHost = "retagro.com"

// BasePathFor returns the application base path for the given hostname:
// empty for local development, the production subpath otherwise.
func BasePathFor(hostname string) string {
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return ""
	}
	return ProductionBasePath
}

// Manifest returns the core resource paths cached during install.
func Manifest(basePath string) []string {
	return []string{
		basePath + "/",
		basePath + "/index.html",
		basePath + "/manifest.json",
	}
}

// Fetcher performs live resource fetches. *http.Client satisfies it.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Controller is the offline cache controller. It populates a versioned
// container on install, prunes stale containers on activation, then serves
// every resource request cache-first, preferring to return something
// (cached, fresh, shell, or placeholder) over propagating an error.
type Controller struct {
	version  string
	basePath string
	upstream string // origin serving the real assets, e.g. http://localhost:5173
	manifest []string
	fetcher  Fetcher
	store    *ContainerStore
	clients  *Registry
	log      *zap.Logger
}

// Options configures a Controller.
type Options struct {
	// Version tags the cache container. Defaults to Version.
	Version string
	// Hostname decides the base path. Defaults to localhost.
	Hostname string
	// Upstream is the origin the live fetches go to.
	Upstream string
	// Fetcher performs live fetches. Defaults to http.DefaultClient.
	Fetcher Fetcher
	// Store holds the cache containers.
	Store *ContainerStore
	// Logger receives lifecycle and caching events.
	Logger *zap.Logger
}

// NewController builds a controller. The manifest is derived from the
// hostname's base path.
func NewController(opts Options) *Controller {
	if opts.Version == "" {
		opts.Version = Version
	}
	if opts.Hostname == "" {
		opts.Hostname = "localhost"
	}
	if opts.Fetcher == nil {
		opts.Fetcher = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	basePath := BasePathFor(opts.Hostname)
	return &Controller{
		version:  opts.Version,
		basePath: basePath,
		upstream: strings.TrimSuffix(opts.Upstream, "/"),
		manifest: Manifest(basePath),
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		clients:  NewRegistry(),
		log:      opts.Logger,
	}
}

// Clients exposes the registry so pages can subscribe to notifications.
func (c *Controller) Clients() *Registry {
	return c.clients
}

// Install populates the versioned container with the manifest resources.
// Bulk population is attempted first; if any resource fails, every resource
// is retried individually and individual failures are tolerated. Install
// never fails: a resource that cannot be fetched is simply absent.
func (c *Controller) Install(ctx context.Context) {
	container := c.store.Open(c.version)

	entries := make(map[string]Entry, len(c.manifest))
	bulkOK := true
	for _, path := range c.manifest {
		e, cacheable, err := c.fetchEntry(ctx, path)
		if err != nil || !cacheable {
			c.log.Warn("bulk cache population failed", zap.String("path", path), zap.Error(err))
			bulkOK = false
			break
		}
		entries[path] = e
	}
	if bulkOK {
		for path, e := range entries {
			container.Put(path, e)
		}
		c.log.Info("core resources cached", zap.Int("count", len(entries)))
		return
	}

	// Retry each resource on its own so one missing file does not block
	// the rest.
	cached := 0
	for _, path := range c.manifest {
		e, cacheable, err := c.fetchEntry(ctx, path)
		if err != nil || !cacheable {
			c.log.Warn("resource not cached", zap.String("path", path), zap.Error(err))
			continue
		}
		container.Put(path, e)
		cached++
	}
	c.log.Info("core resources cached individually", zap.Int("count", cached))
}

// Activate deletes every container whose name differs from the current
// version tag and takes control of all subscribed clients immediately.
func (c *Controller) Activate(ctx context.Context) error {
	names, err := c.store.Names()
	if err != nil {
		return fmt.Errorf("enumerate containers: %w", err)
	}
	for _, name := range names {
		if name == c.version {
			continue
		}
		c.log.Info("deleting stale cache container", zap.String("name", name))
		if err := c.store.Delete(name); err != nil {
			return fmt.Errorf("delete container %s: %w", name, err)
		}
	}
	c.log.Info("controller active", zap.Int("clients", c.clients.Len()))
	return nil
}

// HandleMessage processes a control message. A force-update command deletes
// every container regardless of version and broadcasts a cache-cleared
// notification so clients can reload. This is the only path that bypasses
// the cache-first policy.
func (c *Controller) HandleMessage(msg Message) {
	if msg.Type != MsgForceUpdate {
		return
	}
	c.log.Info("force update requested, clearing all caches")
	if err := c.store.DeleteAll(); err != nil {
		c.log.Warn("cache clear incomplete", zap.Error(err))
	}
	c.clients.Broadcast(Message{Type: MsgCacheCleared})
}

// ServeHTTP intercepts one resource request. Requests matching the deny
// list pass through untouched; everything else is resolved cache-first,
// falling back to a live fetch, then to the cached shell or an empty
// placeholder when offline.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			c.log.Error("fetch handling panicked", zap.Any("reason", rec))
			c.fallback(w, r)
		}
	}()

	if c.denied(r) {
		c.passthrough(w, r)
		return
	}

	path := r.URL.RequestURI()
	container := c.store.Open(c.version)
	if entry, ok := container.Match(path); ok {
		writeEntry(w, entry)
		return
	}

	entry, cacheable, err := c.fetchEntry(r.Context(), path)
	if err != nil {
		c.fallback(w, r)
		return
	}
	if cacheable {
		// Store a copy without delaying the response to the caller.
		// Last writer for a key wins.
		go container.Put(path, entry)
	}
	writeEntry(w, &entry)
}

// denied reports whether the request must not be intercepted: extension
// schemes, the excluded external domain, or any origin other than our own.
func (c *Controller) denied(r *http.Request) bool {
	raw := r.URL.String()
	for _, prefix := range denyPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	host := r.URL.Hostname()
	if host == "" {
		// Origin-relative request for our own assets.
		return strings.Contains(r.Host, deniedHost)
	}
	if strings.Contains(host, deniedHost) {
		return true
	}
	return r.URL.IsAbs() && c.upstream != "" && !strings.HasPrefix(raw, c.upstream)
}

// passthrough forwards the request, with its original headers and body,
// without consulting or touching the cache.
func (c *Controller) passthrough(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, r.URL.String(), r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	req.Header = r.Header.Clone()
	resp, err := c.fetcher.Do(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// fetchEntry performs a live fetch of an origin-relative path and captures
// the response untouched. The second result reports whether the entry may
// be cached: only a plain same-origin 200 qualifies, redirected responses
// are returned as produced but never stored.
func (c *Controller) fetchEntry(ctx context.Context, path string) (Entry, bool, error) {
	target := c.upstream + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Entry{}, false, fmt.Errorf("build request %s: %w", path, err)
	}
	resp, err := c.fetcher.Do(req)
	if err != nil {
		return Entry{}, false, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Entry{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	cacheable := resp.StatusCode == http.StatusOK
	if resp.Request != nil && resp.Request.URL.String() != target {
		c.log.Debug("redirected response", zap.String("path", path))
		cacheable = false
	}
	return Entry{
		URL:    path,
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, cacheable, nil
}

// fallback produces the offline answer: the cached application shell for
// document requests, an empty successful placeholder for anything else.
func (c *Controller) fallback(w http.ResponseWriter, r *http.Request) {
	if isDocument(r) {
		container := c.store.Open(c.version)
		if entry, ok := container.Match(c.basePath + "/"); ok {
			writeEntry(w, entry)
			return
		}
		if entry, ok := container.Match(c.basePath + "/index.html"); ok {
			writeEntry(w, entry)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
}

// isDocument reports whether the request is for a top-level page.
func isDocument(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func writeEntry(w http.ResponseWriter, e *Entry) {
	copyHeader(w.Header(), e.Header)
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}

func copyHeader(dst http.Header, src map[string][]string) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}
