package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kuizu/internal/deck"
	"github.com/hyperjump/kuizu/internal/models"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// httpError carries the status a handler should answer with.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

// generateResponse is the body of POST /generate.
type generateResponse struct {
	Questions []models.MCQ `json:"questions"`
	Count     int          `json:"count"`
}

// handleGenerate accepts a multipart "file" upload and ?n=<count>.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	text, err := s.readUpload(w, r)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	n := s.config.Deck.ClampCount(parseCount(r.URL.Query().Get("n")))
	d, err := s.builder.BuildDeck(r.Context(), text, n)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, generateResponse{Questions: d.Questions, Count: d.Count})
}

// handleCreateDeck accepts either a multipart upload with an optional "count"
// field or a JSON models.DeckInput, and returns the full deck.
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var (
		text  string
		count int
		err   error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		text, err = s.readUpload(w, r)
		if err != nil {
			s.respondFailure(w, err)
			return
		}
		count = parseCount(r.FormValue("count"))
	} else {
		var input models.DeckInput
		r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
				return
			}
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		text, count = input.Text, input.Count
	}

	d, err := s.builder.BuildDeck(r.Context(), text, s.config.Deck.ClampCount(count))
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, d)
}

// readUpload returns the text of the multipart "file" field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", &httpError{http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)}
		}
		return "", &httpError{http.StatusBadRequest, "expected a multipart upload"}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", &httpError{http.StatusBadRequest, "file is required"}
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !s.docs.Supported(ext) {
		return "", &httpError{http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported file type %q", ext)}
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return "", &httpError{http.StatusBadRequest, "could not read upload"}
	}
	s.logger.Debug("upload received",
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(content)),
	)
	text := s.docs.Text(content, ext)
	if strings.TrimSpace(text) == "" {
		return "", &httpError{http.StatusUnprocessableEntity, "no readable text found in document"}
	}
	return text, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	gen := s.config.Generation
	d := s.config.Deck
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"generation": map[string]interface{}{
			"provider": gen.Provider,
			"model":    gen.Model,
			"timeout":  gen.Timeout.String(),
		},
		"deck": map[string]interface{}{
			"default_count":  d.DefaultCount,
			"max_count":      d.MaxCount,
			"max_text_chars": d.MaxTextChars,
			"min_text_chars": d.MinTextChars,
		},
		"extensions":       s.config.Extract.Extensions,
		"max_upload_bytes": s.config.Server.MaxUploadBytes,
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "kuizu multiple-choice deck generator",
		"provider": s.config.Generation.Provider,
		"model":    s.config.Generation.Model,
		"endpoints": []string{
			"POST /generate?n=10",
			"POST /api/v1/decks",
			"GET /api/v1/status",
			"GET /health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseCount reads a count parameter; anything unparsable means "use the default".
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// respondFailure maps err to a status code and writes it as {"error": ...}.
func (s *Server) respondFailure(w http.ResponseWriter, err error) {
	var he *httpError
	switch {
	case errors.As(err, &he):
		s.respondError(w, he.status, he.msg)
	case errors.Is(err, deck.ErrInputTooShort), errors.Is(err, deck.ErrInsufficientTerms):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, deck.ErrInvalidCount):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.respondError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		s.logger.Error("deck build failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
