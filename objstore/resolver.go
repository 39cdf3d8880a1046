package objstore

import "context"

// Resolver provides access to stored study assets. Implementations resolve
// storage paths to temporary access URLs, upload derived assets, and fetch
// asset bytes. All failures are per-asset concerns for callers; nothing here
// aborts a pipeline run on its own.
type Resolver interface {
	// ResolveURL resolves a storage path to a temporary access URL.
	// Inputs that already are URLs pass through unchanged.
	ResolveURL(ctx context.Context, path string) (string, error)

	// Upload stores the given bytes under the storage path.
	Upload(ctx context.Context, path string, data []byte, contentType string) error

	// Fetch retrieves the bytes behind an access URL.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// IsURL reports whether the reference is already an access URL rather than a
// storage path.
func IsURL(ref string) bool {
	return hasPrefixFold(ref, "http://") || hasPrefixFold(ref, "https://") ||
		hasPrefixFold(ref, "file://")
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
