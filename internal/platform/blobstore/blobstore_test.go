package blobstore

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestDiskStore_SaveAndServeURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads/", 1024)
	if err != nil {
		t.Fatal(err)
	}

	stored, err := store.Save(context.Background(), "report.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(stored.URL, "/uploads/") || !strings.HasSuffix(stored.URL, ".pdf") {
		t.Errorf("unexpected URL %q", stored.URL)
	}
	if stored.Size != int64(len("%PDF-1.4")) {
		t.Errorf("size = %d", stored.Size)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file on disk, got %d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".pdf" {
		t.Errorf("stored file lost its extension: %s", entries[0].Name())
	}
}

func TestDiskStore_RejectsOversizedFile(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads", 8)
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Save(context.Background(), "big.pdf", "application/pdf", strings.NewReader("0123456789"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}

	entries, _ := os.ReadDir(store.dir)
	if len(entries) != 0 {
		t.Error("oversized upload left a partial file behind")
	}
}

func TestSave_RejectsBlockedExtensions(t *testing.T) {
	store := NewMemStore(1024)

	for _, name := range []string{"malware.exe", "script.sh", "page.html", "noext"} {
		if _, err := store.Save(context.Background(), name, "", strings.NewReader("x")); !errors.Is(err, ErrFileTypeBlocked) {
			t.Errorf("%s: expected ErrFileTypeBlocked, got %v", name, err)
		}
	}

	if _, err := store.Save(context.Background(), "", "", strings.NewReader("x")); !errors.Is(err, ErrMissingFileName) {
		t.Errorf("expected ErrMissingFileName, got %v", err)
	}
}

func TestMemStore_RoundTrip(t *testing.T) {
	store := NewMemStore(1024)

	stored, err := store.Save(context.Background(), "scan.png", "image/png", bytes.NewReader([]byte{1, 2, 3}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := store.Get(stored.URL)
	if !ok {
		t.Fatal("stored file not retrievable")
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Error("content mismatch")
	}
}

func TestHandler_Upload(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewMemStore(1024))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "result.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "file_url") {
		t.Error("response missing file_url")
	}
}

func TestHandler_UploadRequiresFile(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewMemStore(1024))

	req := httptest.NewRequest(http.MethodPost, "/uploads", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
