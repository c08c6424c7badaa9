// Package blobstore stores uploaded clinical documents and hands back the
// URL they will be served from. The disk store backs the portal's upload
// directory; the in-memory store backs tests.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrFileTypeBlocked = errors.New("file type is not allowed")
	ErrMissingFileName = errors.New("file name is required")
)

// allowedExtensions covers the document shapes the portal accepts:
// reports, prescriptions and scans.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
}

// Stored describes a saved document.
type Stored struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"file_url"`
}

// Store is the contract for document storage backends.
type Store interface {
	// Save persists the content under a collision-free name derived from
	// fileName and returns where it can be fetched.
	Save(ctx context.Context, fileName, contentType string, content io.Reader) (*Stored, error)
}

// validate applies the shared name/extension rules and returns the
// generated storage name.
func validate(fileName string) (string, error) {
	if fileName == "" {
		return "", ErrMissingFileName
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrFileTypeBlocked, ext)
	}
	return uuid.New().String() + ext, nil
}

// DiskStore writes documents under a local directory served as static
// files.
type DiskStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewDiskStore(dir, baseURL string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}, nil
}

func (s *DiskStore) Save(_ context.Context, fileName, contentType string, content io.Reader) (*Stored, error) {
	name, err := validate(fileName)
	if err != nil {
		return nil, err
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("write file: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(dst.Name())
		return nil, ErrFileTooLarge
	}

	return &Stored{
		FileName:    fileName,
		ContentType: contentType,
		Size:        n,
		URL:         s.baseURL + "/" + name,
	}, nil
}

// MemStore keeps documents in memory. Tests only.
type MemStore struct {
	mu       sync.RWMutex
	files    map[string][]byte
	maxBytes int64
}

func NewMemStore(maxBytes int64) *MemStore {
	return &MemStore{files: map[string][]byte{}, maxBytes: maxBytes}
}

func (s *MemStore) Save(_ context.Context, fileName, contentType string, content io.Reader) (*Stored, error) {
	name, err := validate(fileName)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()

	return &Stored{
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		URL:         "/uploads/" + name,
	}, nil
}

// Get returns a stored file's bytes. Tests only.
func (s *MemStore) Get(url string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path.Base(url)]
	return data, ok
}
