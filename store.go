package sicontent

import "context"

// Store is the content service surface used by callers. *Client implements
// it; tests and hosts may substitute their own.
type Store interface {
	Lookup(ctx context.Context, key PackageKey) (uri string, ok bool, err error)
	Upload(ctx context.Context, key PackageKey, data []byte, onProgress ProgressFunc) (uri string, err error)
	UploadIfNotExists(ctx context.Context, key PackageKey, data []byte, onProgress ProgressFunc) (UploadResult, error)
}

var _ Store = (*Client)(nil)
