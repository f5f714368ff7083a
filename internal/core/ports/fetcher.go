package ports

import "context"

// ArchiveFetcher downloads and unpacks remote workspace archives.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type ArchiveFetcher interface {
	// Fetch downloads the gzipped tarball at url, unpacks it, and returns
	// the contained workspace directory.
	Fetch(ctx context.Context, url string) (string, error)

	// Prefetch warms the download cache for several URLs concurrently.
	// Failures are deferred to the later Fetch call for that URL.
	Prefetch(ctx context.Context, urls []string)
}
