package web

import (
	"net/http"

	"github.com/mkovtun/receiptd/internal/apperr"
	"github.com/mkovtun/receiptd/internal/logging"
)

// handleListFiles returns every processed file record.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.ListFiles(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// handleUpload accepts one multipart-encoded export under the "file" field
// and runs it through the ingestion pipeline.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, apperr.Wrap(apperr.KindDecode,
			"the upload is too large or not a valid form", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, apperr.Wrap(apperr.KindDecode,
			"no file provided", err))
		return
	}
	defer file.Close()

	logging.FromContext(r.Context()).Info("upload received",
		"filename", header.Filename, "size", header.Size)

	if err := s.ingest.ProcessUpload(r.Context(), header.Filename, file); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"detail": "The file was processed successfully",
	})
}

// handleStats returns the aggregate summary over current persisted state.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.Summary(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
