package main

import (
	"errors"
	"fmt"
	"net/http"

	"image-identifier/internal/llm"
)

var (
	errNoImage  = errors.New("no image provided")
	errTooLarge = errors.New("image too large")
	errNotImage = errors.New("upload is not an image")
)

// multipart framing allowance on top of the image itself
const formOverhead = 1 << 20

// readImage pulls the "image" form file out of a multipart request and encodes
// it for the model.
func readImage(w http.ResponseWriter, r *http.Request, maxSize int64) (llm.InlineData, error) {
	if r.ContentLength > maxSize+formOverhead {
		return llm.InlineData{}, errTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return llm.InlineData{}, errTooLarge
		}
		return llm.InlineData{}, fmt.Errorf("%w: %v", errNoImage, err)
	}
	defer file.Close()

	if header.Size > maxSize {
		return llm.InlineData{}, errTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}
	image, err := llm.ReadInlineData(file, mimeType)
	if err != nil {
		return llm.InlineData{}, fmt.Errorf("%w: %v", errNoImage, err)
	}
	if !image.IsImage() {
		return llm.InlineData{}, errNotImage
	}
	return image, nil
}

// uploadFailure maps a readImage error to a status and a user-facing message.
func uploadFailure(err error, maxSize int64) (int, string) {
	switch {
	case errors.Is(err, errNoImage):
		return http.StatusBadRequest, "No image provided"
	case errors.Is(err, errTooLarge):
		return http.StatusBadRequest, fmt.Sprintf("image too large (max %d bytes)", maxSize)
	case errors.Is(err, errNotImage):
		return http.StatusBadRequest, "unsupported file type (only images allowed)"
	default:
		return http.StatusInternalServerError, "failed to read image"
	}
}
