package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftstats/internal/importer"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
)

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	logID := s.startImportLog(uid, "csv")

	started := time.Now()
	result, err := s.imp.Ingest(r.Context(), r.Body, uid)
	durationMs := int(time.Since(started).Milliseconds())
	s.finishImportLog(logID, uid, "csv", result, err, durationMs)

	if err != nil {
		s.log.Error("import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), uid, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// startImportLog records a "running" import_logs row and returns its ID,
// or 0 when the insert fails.
func (s *Server) startImportLog(uid uuid.UUID, source string) int64 {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	id, err := s.db.InsertImportLog(ctx, storage.ImportLog{
		UserID: uid,
		Source: source,
		Status: "running",
	})
	if err != nil {
		s.log.Error("failed to log import start", "source", source, "error", err)
		return 0
	}
	return id
}

// finishImportLog updates the import_logs row with the operation's outcome.
// When the initial insert failed (logID 0) a fresh row is written instead.
func (s *Server) finishImportLog(logID int64, uid uuid.UUID, source string, result *importer.Result, importErr error, durationMs int) {
	status := "success"
	var errMsg *string
	if importErr != nil {
		status = "error"
		msg := importErr.Error()
		errMsg = &msg
	}

	log := storage.ImportLog{
		UserID:       uid,
		Source:       source,
		Status:       status,
		DurationMs:   &durationMs,
		ErrorMessage: errMsg,
	}
	if result != nil {
		log.SessionsReceived = result.SessionsReceived
		log.SessionsInserted = result.SessionsInserted
		log.SetsReceived = result.SetsReceived
		log.SetsInserted = result.SetsInserted
	}

	ctx, cancel := contextWithTimeout()
	defer cancel()

	if logID == 0 {
		if _, err := s.db.InsertImportLog(ctx, log); err != nil {
			s.log.Error("failed to log import", "source", source, "error", err)
		}
		return
	}
	if err := s.db.UpdateImportLog(ctx, logID, log); err != nil {
		s.log.Error("failed to update import log", "source", source, "error", err)
	}
}

// contextWithTimeout returns a background context with a 5-second timeout
// for async logging.
func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
