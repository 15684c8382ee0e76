package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/Ravikin/dno-stats/pkg/extract"
	"github.com/Ravikin/dno-stats/pkg/report"
)

// maxUploadBytes caps one upload request; save files are megabytes at most.
const maxUploadBytes = 64 << 20

// Server holds the API server state
type Server struct {
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(config ServerConfig, metrics *Metrics) *Server {
	return &Server{config: config, metrics: metrics}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleExtract accepts a multipart upload with a required "save" part and an
// optional "header" part (the .dat companion) and responds with one save
// entry in the report contract shape. Decoder failures surface in the entry's
// errors list; only an unreadable upload is a hard failure.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := ksuid.New().String()
	w.Header().Set("X-Request-ID", requestID)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.recordExtraction(false, 0, start)
		sendError(w, fmt.Sprintf("invalid multipart request: %v", err), http.StatusBadRequest)
		return
	}

	saveData, saveName, err := readFormFile(r, "save")
	if err != nil {
		s.recordExtraction(false, 0, start)
		sendError(w, "missing save file part", http.StatusBadRequest)
		return
	}
	headerData, _, err := readFormFile(r, "header")
	if err != nil {
		headerData = nil // the .dat companion is optional
	}

	result := extract.Extract(saveData, headerData, nil)

	entry := report.SaveEntry{
		FileName:     saveName,
		FileSize:     int64(len(saveData)),
		LastModified: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		Header:       result.Header,
		Statistics:   result.Stats,
		Errors:       result.Errors,
	}

	s.recordExtraction(true, len(result.Errors), start)
	sendJSON(w, http.StatusOK, entry)
}

func (s *Server) recordExtraction(success bool, decoderErrors int, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordExtraction(success, decoderErrors, time.Since(start))
	}
}

func readFormFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}
