package sicontent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
	"github.com/sirupsen/logrus"

	"github.com/aweris/sicontent/internal/transfer"
)

const (
	packagesPath = "/api/v1/content/packages"

	// DigestHeader carries the package digest on upload. The name is
	// historical: the service expects the base64 SHA-1, not an MD5.
	DigestHeader = "Content-MD5"

	formField = "file"
)

// Client talks to one content service instance. It keeps no per-package
// state and is safe for concurrent use.
type Client struct {
	endpoint    string
	http        *http.Client
	log         logrus.FieldLogger
	segmentSize int
	contentType string
}

// New creates a client for the service at endpoint (e.g.
// "https://content.example.org"). Trailing slashes are dropped.
func New(endpoint string, opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: want an http(s) URL", endpoint)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: transport.NewUserAgent(http.DefaultTransport, options.UserAgent),
		}
	}

	return &Client{
		endpoint:    endpoint,
		http:        httpClient,
		log:         options.Logger,
		segmentSize: options.SegmentSize,
		contentType: options.ContentType,
	}, nil
}

// Endpoint returns the normalized service address.
func (c *Client) Endpoint() string { return c.endpoint }

// PackageURL returns the lookup address of key.
func (c *Client) PackageURL(key PackageKey) string {
	return c.endpoint + packagesPath + "/" + key.HashToken() + "/" + key.NameToken()
}

// Lookup asks the service whether a package with key is stored. It returns
// the package URI and true if so, and false with a nil error if the service
// answers 404. Any other status is a KindRejected error.
func (c *Client) Lookup(ctx context.Context, key PackageKey) (string, bool, error) {
	u := c.PackageURL(key)
	log := c.log.WithFields(logrus.Fields{"name": key.Name, "digest": key.Hash})
	log.WithField("url", u).Info("checking if package exists")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", false, networkError("lookup", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, networkError("lookup", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", false, networkError("lookup", fmt.Errorf("read response: %w", err))
		}
		uri := string(body)
		log.WithField("uri", uri).Info("package already exists")
		return uri, true, nil
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Info("package does not exist, upload required")
		return "", false, nil
	default:
		body := readBody(resp)
		log.WithFields(logrus.Fields{"status": resp.StatusCode, "body": body}).Error("lookup failed")
		return "", false, rejectedError("lookup", resp.StatusCode, body)
	}
}

// Upload sends data as the package identified by key and returns the URI the
// service stored it under.
//
// onProgress is called with (0, total) first, then after every segment handed
// to the transport, and with (total, total) once the service has answered,
// whether or not the upload was accepted. It may be nil.
func (c *Client) Upload(ctx context.Context, key PackageKey, data []byte, onProgress ProgressFunc) (string, error) {
	if !key.Matches(data) {
		return "", hashError("upload", ErrDigestMismatch)
	}

	u := c.endpoint + packagesPath
	total := int64(len(data))
	log := c.log.WithFields(logrus.Fields{"name": key.Name, "digest": key.Hash})
	log.WithFields(logrus.Fields{"url": u, "size": total}).Info("uploading package")

	progress := transfer.NewProgress(total, onProgress)
	progress.Start()

	payload := transfer.NewReader(ctx, data, c.segmentSize, progress.Report)
	body, err := transfer.NewMultipart(formField, key.Name, c.contentType, payload, total)
	if err != nil {
		return "", ioError("upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return "", networkError("upload", err)
	}
	req.ContentLength = body.Length
	req.Header.Set("Content-Type", body.ContentType)
	// set directly to keep the exact spelling on the wire
	req.Header[DigestHeader] = []string{key.Hash}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", networkError("upload", err)
	}
	defer resp.Body.Close()

	progress.Finish()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBody(resp)
		log.WithFields(logrus.Fields{"status": resp.StatusCode, "body": body}).Error("upload failed")
		return "", rejectedError("upload", resp.StatusCode, body)
	}

	uri, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", networkError("upload", fmt.Errorf("read response: %w", err))
	}
	log.WithField("uri", string(uri)).Info("package uploaded")
	return string(uri), nil
}

// UploadIfNotExists looks key up and uploads data only if the service does
// not have it yet. onProgress is not called for a package that already
// exists. A failed lookup is returned as-is; no upload is attempted.
//
// Lookup and upload are separate requests: another client may store the
// same package in between, and the service treats that upload as a no-op.
func (c *Client) UploadIfNotExists(ctx context.Context, key PackageKey, data []byte, onProgress ProgressFunc) (UploadResult, error) {
	uri, ok, err := c.Lookup(ctx, key)
	if err != nil {
		return UploadResult{}, err
	}
	if ok {
		return UploadResult{URI: uri, AlreadyExists: true}, nil
	}

	uri, err = c.Upload(ctx, key, data, onProgress)
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{URI: uri}, nil
}

// readBody returns the response body for diagnostics; read errors leave
// whatever was received.
func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}
