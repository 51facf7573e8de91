package media

import (
	"net/http"

	"gotalk/internal/common"
	"gotalk/internal/dbmongo"
)

// maxUploadBytes caps an upload at 512 KiB, enough for short voice notes.
const maxUploadBytes = 512 << 10

// UploadHandler accepts a multipart upload, stores the bytes in the blob
// store and returns the opaque path a media message carries as its
// media_ref.
type UploadHandler struct {
	storage *dbmongo.MediaStorage
}

func NewUploadHandler(storage *dbmongo.MediaStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uploaderID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	mediaFile, err := h.storage.UploadFile(r.Context(), header.Filename, header.Header.Get("Content-Type"), uploaderID, file)
	if err != nil {
		common.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"file_path": "/media/" + mediaFile.ID,
	})
}
