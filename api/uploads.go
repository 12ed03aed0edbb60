package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadsHandler struct {
	userRepo  repository.UserRepo
	uploadDir string
}

// NewUploadsHandler creates a new UploadsHandler storing files under dir.
func NewUploadsHandler(ur repository.UserRepo, dir string) *UploadsHandler {
	return &UploadsHandler{userRepo: ur, uploadDir: dir}
}

// saveUpload stores the named multipart field under uploadDir/subdir and
// returns the public path clients use to fetch it back.
func (h *UploadsHandler) saveUpload(r *http.Request, field, subdir string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", fmt.Errorf("parsing multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("reading form file %q: %w", field, err)
	}
	defer file.Close()

	dir := filepath.Join(h.uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	name := uuid.NewString() + "-" + sanitizeFilename(header.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return "/uploads/" + subdir + "/" + name, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func (h *UploadsHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	path, err := h.saveUpload(r, "avatar", "avatars")
	if err != nil {
		logger.Error("avatar upload failed", "error", err)
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]string{"avatarPath": path}, http.StatusCreated)
}

func (h *UploadsHandler) UploadIdentityPic(w http.ResponseWriter, r *http.Request) {
	path, err := h.saveUpload(r, "identityPic", "identities")
	if err != nil {
		logger.Error("identity pic upload failed", "error", err)
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]string{"identityPicPath": path}, http.StatusCreated)
}

// UpdateAvatar stores a new avatar for the user and records its path on
// the profile in one request.
func (h *UploadsHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	path, err := h.saveUpload(r, "avatar", "avatars")
	if err != nil {
		logger.Error("avatar upload failed", "error", err, "user", id.Hex())
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}

	user.Avatar = path
	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *UploadsHandler) ServeAvatar(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "avatars")
}

func (h *UploadsHandler) ServeIdentityPic(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "identities")
}

func (h *UploadsHandler) serveFile(w http.ResponseWriter, r *http.Request, subdir string) {
	name := mux.Vars(r)["path"]
	// Only bare filenames are served, anything path-like is rejected.
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		http.Error(w, "invalid filename", http.StatusBadRequest)
		return
	}

	full := filepath.Join(h.uploadDir, subdir, name)
	if _, err := os.Stat(full); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, full)
}
