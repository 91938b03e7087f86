// Package archive copies generated documents to object storage.
package archive

import (
	"context"
	"sync"
)

// Archiver stores a document under key
type Archiver interface {
	Store(ctx context.Context, key, contentType string, data []byte) error
}

// Noop discards every document
type Noop struct{}

// Store implements Archiver
func (Noop) Store(ctx context.Context, key, contentType string, data []byte) error {
	return nil
}

// Object is a document held by Memory
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Memory keeps documents in process memory
type Memory struct {
	mu      sync.Mutex
	objects []Object
}

// NewMemory returns an empty Memory archiver
func NewMemory() *Memory {
	return &Memory{}
}

// Store implements Archiver
func (m *Memory) Store(ctx context.Context, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = append(m.objects, Object{Key: key, ContentType: contentType, Data: buf})
	return nil
}

// Objects returns the stored documents in insertion order
func (m *Memory) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Object, len(m.objects))
	copy(out, m.objects)
	return out
}
