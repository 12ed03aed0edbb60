package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return buf, w.FormDataContentType()
}

func TestUploadAndServeAvatar(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, "avatar", "photo.png", "fake image bytes")
	req := httptest.NewRequest(http.MethodPost, "/auth/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[map[string]string](t, rec)
	path := resp["avatarPath"]
	if !strings.HasPrefix(path, "/uploads/avatars/") {
		t.Fatalf("avatarPath = %q", path)
	}

	// Files are fetched back by bare filename.
	name := strings.TrimPrefix(path, "/uploads/avatars/")
	rec = env.do(t, http.MethodGet, "/auth/avatar/"+name, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("serve status = %d", rec.Code)
	}
	if rec.Body.String() != "fake image bytes" {
		t.Fatalf("served content = %q", rec.Body.String())
	}
}

func TestUploadAvatar_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, "wrongfield", "photo.png", "bytes")
	req := httptest.NewRequest(http.MethodPost, "/auth/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServeAvatar_RejectsTraversal(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/auth/avatar/..%2F..%2Fetc%2Fpasswd", "", nil)
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound && rec.Code != http.StatusMovedPermanently {
		t.Fatalf("traversal status = %d, must not serve", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/auth/avatar/missing.png", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing file status = %d, want 404", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"../../../etc/passwd", "passwd"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
