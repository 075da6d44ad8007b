package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNoContent is returned when the provider answers without any text.
var ErrNoContent = errors.New("llm: no content returned")

// Client is a minimal text-and-image generation interface to allow pluggable providers.
// image may be nil for text-only prompts.
type Client interface {
	Generate(ctx context.Context, prompt string, image *InlineData) (string, error)
}

// InlineData is an image encoded for inline transport to the model.
type InlineData struct {
	Data     string `json:"data"` // base64, standard encoding
	MIMEType string `json:"mimeType"`
}

// Part wraps InlineData in the shape the generative APIs expect.
type Part struct {
	InlineData InlineData `json:"inlineData"`
}

// ReadInlineData reads r fully and encodes it as base64. An empty mimeType is
// sniffed from the content.
func ReadInlineData(r io.Reader, mimeType string) (InlineData, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return InlineData{}, fmt.Errorf("read image: %w", err)
	}
	if len(content) == 0 {
		return InlineData{}, errors.New("image is empty")
	}
	if mimeType == "" {
		mimeType = DetectMIMEType(content)
	}
	return InlineData{
		Data:     base64.StdEncoding.EncodeToString(content),
		MIMEType: mimeType,
	}, nil
}

// DetectMIMEType sniffs content and drops any parameters.
func DetectMIMEType(content []byte) string {
	mimeType := mimetype.Detect(content).String()
	return strings.TrimSpace(strings.Split(mimeType, ";")[0])
}

// IsImage reports whether the payload carries an image MIME type.
func (d InlineData) IsImage() bool {
	return strings.HasPrefix(d.MIMEType, "image/")
}

// Bytes decodes the base64 payload.
func (d InlineData) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(d.Data)
	if err != nil {
		return nil, fmt.Errorf("decode inline data: %w", err)
	}
	return data, nil
}

// DataURL renders the payload as a data: URL.
func (d InlineData) DataURL() string {
	return "data:" + d.MIMEType + ";base64," + d.Data
}
