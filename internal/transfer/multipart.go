package transfer

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Body is a single-part multipart/form-data request body of known length.
type Body struct {
	io.Reader
	ContentType string
	Length      int64
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// NewMultipart frames payload as the only part of a form. The part header
// and the closing boundary are rendered up front so the payload itself is
// streamed without being copied into an intermediate buffer.
func NewMultipart(field, fileName, contentType string, payload io.Reader, size int64) (*Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)
	if _, err := w.CreatePart(h); err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	head := bytes.Clone(buf.Bytes())

	buf.Reset()
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}
	tail := bytes.Clone(buf.Bytes())

	return &Body{
		Reader:      io.MultiReader(bytes.NewReader(head), payload, bytes.NewReader(tail)),
		ContentType: w.FormDataContentType(),
		Length:      int64(len(head)) + size + int64(len(tail)),
	}, nil
}
