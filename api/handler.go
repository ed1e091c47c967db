// Package api - HTTP handlers for quoting
// Handlers wrap the pipeline and contain no rating logic.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"premium-quote/core/output"
	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
)

const maxBodyBytes = 1 << 20

// handleQuote handles POST /v1/quotes. With ?format=text or ?format=yaml
// the quote is rendered by the matching formatter instead of wrapped JSON.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var formatter output.Formatter
	if name := r.URL.Query().Get("format"); name != "" && name != string(output.FormatJSON) {
		f, err := s.registry.Get(name)
		if err != nil {
			s.writeError(w, CodeUnsupported, err.Error(), http.StatusBadRequest)
			return
		}
		formatter = f
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
		return
	}

	raw, err := decodeRecord(body)
	if err != nil {
		s.writeError(w, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
		return
	}

	q, err := s.quote(raw)
	if err != nil {
		s.writeQuoteError(w, err)
		return
	}

	if formatter != nil {
		var buf bytes.Buffer
		if err := formatter.Render(&buf, q); err != nil {
			s.writeInternal(w, qerrors.Internal("rendering quote", err))
			return
		}
		w.Header().Set("Content-Type", contentType(formatter.Format()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	s.writeJSON(w, &QuoteResponse{
		Quote:    q,
		Metadata: s.metadata(start),
	}, http.StatusOK)
}

// handleBatch handles POST /v1/quotes/batch
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
		return
	}

	resp := &BatchResponse{Results: make([]BatchItem, 0, len(req))}
	for i, item := range req {
		result := BatchItem{Index: i}

		raw, err := decodeRecord(item)
		if err == nil {
			result.Quote, err = s.quote(raw)
		}
		if err != nil {
			code := CodeFatalPipeline
			if !qerrors.IsType(err, qerrors.TypeFatalPipeline) {
				code = CodeInvalidJSON
			}
			result.Error = &ErrorBody{Code: code, Message: err.Error()}
			resp.Failed++
		} else {
			resp.Quoted++
		}
		resp.Results = append(resp.Results, result)
	}

	resp.Metadata = s.metadata(start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "premium-quote",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) quote(raw types.RawRecord) (*output.Quote, error) {
	res, err := s.pipeline.Run(raw)
	if err != nil {
		return nil, err
	}
	return output.NewQuote(res), nil
}

// decodeRecord decodes one JSON value. JSON null and non-object values
// yield a nil record, which the pipeline rejects as fatal.
func decodeRecord(data []byte) (types.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after applicant object")
	}
	obj, _ := v.(map[string]any)
	return types.RawRecord(obj), nil
}

func (s *Server) metadata(start time.Time) *ResponseMetadata {
	return &ResponseMetadata{
		EngineVersion: s.version,
		DurationMs:    time.Since(start).Milliseconds(),
	}
}

func (s *Server) writeQuoteError(w http.ResponseWriter, err error) {
	if qerrors.IsType(err, qerrors.TypeFatalPipeline) {
		s.writeError(w, CodeFatalPipeline, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeInternal(w, err)
}

func (s *Server) writeInternal(w http.ResponseWriter, err error) {
	if !qerrors.IsType(err, qerrors.TypeInternal) {
		err = qerrors.Internal("quote failed", err)
	}
	s.logger.Error("quote failed", zap.Error(err))
	s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}

func contentType(f output.Format) string {
	switch f {
	case output.FormatYAML:
		return "application/yaml"
	case output.FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}
