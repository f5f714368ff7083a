// Package fetch downloads remote workspace tarballs and unpacks them into
// temporary directories so their packages can be published like local ones.
package fetch

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/dnscache"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 500 * time.Millisecond

	// maxEntrySize caps a single extracted file. Workspace tarballs are
	// source trees; anything larger is suspect.
	maxEntrySize = 512 << 20
)

// Fetcher downloads gzipped workspace tarballs over HTTP and unpacks them.
// Downloads land in a cache directory keyed by the URL hash, so a Prefetch
// followed by Fetch reads the archive from disk.
type Fetcher struct {
	client     *http.Client
	logger     ports.Logger
	cacheDir   string
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithMaxRetries sets the maximum retry attempts.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = n
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.baseDelay = d
	}
}

// WithCacheDir sets the directory downloaded archives are stored in.
func WithCacheDir(dir string) Option {
	return func(f *Fetcher) {
		f.cacheDir = dir
	}
}

// NewFetcher creates a Fetcher with a DNS-caching transport.
func NewFetcher(logger ports.Logger, opts ...Option) *Fetcher {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					host, port, err := net.SplitHostPort(addr)
					if err != nil {
						return nil, err
					}
					ips, err := resolver.LookupHost(ctx, host)
					if err != nil {
						return nil, err
					}
					for _, ip := range ips {
						conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
						if err == nil {
							return conn, nil
						}
					}
					return nil, errors.New("no resolved address was dialable")
				},
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:     logger,
		cacheDir:   filepath.Join(os.TempDir(), "depot-fetch"),
		userAgent:  "depot/1.0",
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the tarball at url, unpacks it next to the cached archive,
// and returns the workspace directory it contains.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	archive, err := f.download(ctx, url)
	if err != nil {
		return "", err
	}

	dest, err := os.MkdirTemp("", "depot-workspace-*")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}

	if err := extract(archive, dest); err != nil {
		_ = os.RemoveAll(dest)
		return "", err
	}

	workspace, err := findWorkspace(dest)
	if err != nil {
		_ = os.RemoveAll(dest)
		return "", err
	}
	return workspace, nil
}

// Prefetch warms the download cache for all URLs concurrently. Errors are
// logged and otherwise dropped; the sequential Fetch for the same URL will
// surface them.
func (f *Fetcher) Prefetch(ctx context.Context, urls []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, url := range urls {
		g.Go(func() error {
			if _, err := f.download(ctx, url); err != nil {
				f.logger.Warn("prefetch of " + url + " failed, will retry on demand")
			}
			return nil
		})
	}
	_ = g.Wait()
}

// download fetches the URL into the cache unless a cached copy exists and
// returns the cached file path.
func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(f.cacheDir, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}

	cached := filepath.Join(f.cacheDir, cacheKey(url))
	if _, err := os.Stat(cached); err == nil {
		return cached, nil
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			delay += time.Duration(float64(delay) * rand.Float64() * 0.1) // #nosec G404 -- jitter only

			select {
			case <-ctx.Done():
				return "", zerr.Wrap(ctx.Err(), domain.ErrFetchFailed.Error())
			case <-time.After(delay):
			}
		}

		retryable, err := f.downloadOnce(ctx, url, cached)
		if err == nil {
			return cached, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (f *Fetcher) downloadOnce(ctx context.Context, url, dest string) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return true, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Server-side trouble and rate limits are worth retrying, a 404 is not.
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return retry, zerr.With(
			zerr.Wrap(fmt.Errorf("unexpected status %d", resp.StatusCode), domain.ErrFetchFailed.Error()),
			"url", url,
		)
	}

	// Write through a temp file so a cancelled download never leaves a
	// truncated archive under the cache key.
	tmp, err := os.CreateTemp(f.cacheDir, "partial-*")
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return true, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return false, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return false, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}
	return false, nil
}

// cacheKey derives a stable file name for the URL.
func cacheKey(url string) string {
	return strconv.FormatUint(xxhash.Sum64String(url), 16) + ".tar.gz"
}

// extract unpacks the gzipped tarball into dest, refusing entries that would
// escape it.
func extract(archive, dest string) error {
	f, err := os.Open(archive) // #nosec G304 -- path from the fetch cache
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, domain.ErrExtractFailed.Error())
		}

		target, err := sanitizePath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrExtractFailed.Error())
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr); err != nil {
				return err
			}
		default:
			// Symlinks and the rest are skipped; source tarballs do not need them.
		}
	}
}

func writeEntry(target string, tr *tar.Reader, hdr *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}

	mode := os.FileMode(hdr.Mode).Perm() //nolint:gosec // tar mode bits fit
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode) // #nosec G304 -- path sanitized above
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, io.LimitReader(tr, maxEntrySize)); err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	return nil
}

func sanitizePath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", zerr.With(domain.ErrExtractFailed, "entry", name)
	}
	return target, nil
}

// findWorkspace locates the unpacked workspace: either a manifest at the
// extraction root or inside exactly the first top-level directory carrying
// one, the way release tarballs wrap their tree in name-version/.
func findWorkspace(dest string) (string, error) {
	if _, err := os.Stat(filepath.Join(dest, domain.ManifestFileName)); err == nil {
		return dest, nil
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrWorkspaceNotFound.Error())
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(dest, e.Name())
		if _, err := os.Stat(filepath.Join(candidate, domain.ManifestFileName)); err == nil {
			return candidate, nil
		}
	}
	return "", zerr.With(domain.ErrWorkspaceNotFound, "dir", dest)
}
