// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
)

// UploadedObject records a single call to MemoryUploader.Upload.
type UploadedObject struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int
}

// MemoryUploader is an in-memory storage.Uploader implementation for tests.
// It records every upload and returns deterministic fake URLs.
type MemoryUploader struct {
	mu      sync.Mutex
	Objects []UploadedObject
	// Err, when set, is returned from every Upload call.
	Err error
}

// NewMemoryUploader creates an empty in-memory uploader stub.
func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{}
}

// Upload records the object and returns a fake public URL.
func (u *MemoryUploader) Upload(_ context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	u.mu.Lock()
	u.Objects = append(u.Objects, UploadedObject{
		Folder:      folder,
		Filename:    filename,
		ContentType: contentType,
		Size:        len(data),
	})
	u.mu.Unlock()

	return fmt.Sprintf("https://media.test/%s/%s", folder, filename), nil
}

// Count returns how many objects have been uploaded.
func (u *MemoryUploader) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.Objects)
}

// PNGBytes returns a valid 1x1 PNG image for multipart upload fixtures.
func PNGBytes() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
