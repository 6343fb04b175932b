package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgallion1/slidegest/internal/config"
)

const testAPIKey = "test-key"

func testServer() *Server {
	cfg := config.Config{
		Port:            "0",
		SlidegestAPIKey: testAPIKey,
		MaxUploadBytes:  10 << 20,
		SlideWorkers:    2,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(log, cfg)
}

func testPPTX(t *testing.T) []byte {
	t.Helper()
	const nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	const nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	const relNS = "http://schemas.openxmlformats.org/package/2006/relationships"
	const slideType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"

	entries := map[string]string{
		"ppt/presentation.xml": `<p:presentation xmlns:p="` + nsP + `"/>`,
		"ppt/_rels/presentation.xml.rels": `<Relationships xmlns="` + relNS + `">` +
			`<Relationship Id="rId2" Type="` + slideType + `" Target="slides/slide1.xml"/>` +
			`</Relationships>`,
		"ppt/slides/slide1.xml": `<p:sld xmlns:a="` + nsA + `" xmlns:p="` + nsP + `">` +
			`<p:cSld><p:spTree><p:sp><p:txBody>` +
			`<a:p><a:r><a:t>Hello deck</a:t></a:r></a:p>` +
			`</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for path, content := range entries {
		w, err := zw.Create(path)
		if err != nil {
			t.Fatalf("create %s: %v", path, err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestHandleExtract_Success(t *testing.T) {
	srv := testServer()
	body, contentType := multipartUpload(t, "deck.pptx", testPPTX(t))

	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Filename   string `json:"filename"`
		SlideCount int    `json:"slide_count"`
		Slides     []struct {
			ID   string   `json:"id"`
			Path string   `json:"path"`
			Text []string `json:"text"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Filename != "deck.pptx" {
		t.Errorf("expected filename %q, got %q", "deck.pptx", resp.Filename)
	}
	if resp.SlideCount != 1 || len(resp.Slides) != 1 {
		t.Fatalf("expected 1 slide, got count=%d len=%d", resp.SlideCount, len(resp.Slides))
	}
	if resp.Slides[0].ID != "rId2" {
		t.Errorf("expected slide id %q, got %q", "rId2", resp.Slides[0].ID)
	}
	if len(resp.Slides[0].Text) != 1 || resp.Slides[0].Text[0] != "Hello deck" {
		t.Errorf("expected text %q, got %q", "Hello deck", resp.Slides[0].Text)
	}
}

func TestHandleExtract_RequiresAuth(t *testing.T) {
	srv := testServer()
	body, contentType := multipartUpload(t, "deck.pptx", testPPTX(t))

	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	body, contentType = multipartUpload(t, "deck.pptx", testPPTX(t))
	req = httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestHandleExtract_RejectsOtherExtensions(t *testing.T) {
	srv := testServer()
	body, contentType := multipartUpload(t, "notes.txt", []byte("plain text"))

	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleExtract_BadContainer(t *testing.T) {
	srv := testServer()
	body, contentType := multipartUpload(t, "broken.pptx", []byte("not a zip"))

	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
