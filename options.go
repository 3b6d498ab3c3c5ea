package sicontent

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/aweris/sicontent/internal/transfer"
)

// Version is reported in the default User-Agent.
var Version = "dev"

// DefaultContentType is the media type of the uploaded package part.
const DefaultContentType = "application/x-zip-compressed"

// Options configures a Client.
type Options struct {
	HTTPClient  *http.Client
	SegmentSize int
	UserAgent   string
	ContentType string
	Logger      logrus.FieldLogger
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		SegmentSize: transfer.DefaultSegmentSize,
		UserAgent:   "sicontent/" + Version,
		ContentType: DefaultContentType,
		Logger:      discardLogger(),
	}
}

// WithHTTPClient sets the client used for every request. It is used as-is,
// so WithUserAgent has no effect on it.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) {
		if c != nil {
			o.HTTPClient = c
		}
	}
}

// WithSegmentSize sets how many payload bytes are handed to the transport
// between two progress reports.
func WithSegmentSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.SegmentSize = n
		}
	}
}

// WithUserAgent sets the User-Agent of the default HTTP client.
func WithUserAgent(ua string) Option {
	return func(o *Options) { o.UserAgent = ua }
}

// WithContentType overrides the media type of the uploaded part.
func WithContentType(ct string) Option {
	return func(o *Options) {
		if ct != "" {
			o.ContentType = ct
		}
	}
}

// WithLogger sets the logger protocol steps are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
