package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/worksheet"
)

// CreateBatchRequest is the body of POST /v1/batches. Operation, tier and
// source accept the same English and Spanish names as the CLI.
type CreateBatchRequest struct {
	Operation string `json:"operation" validate:"required"`
	Tier      string `json:"tier" validate:"required"`
	Count     int    `json:"count" validate:"required,min=1"`
	Source    string `json:"source"`
}

// batchParams is a fully parsed generation request.
type batchParams struct {
	op     exercise.Operation
	tier   exercise.Tier
	count  int
	source exercise.Source
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createBatch(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	p, err := s.parse(req)
	if err != nil {
		s.respondError(w, r, statusFor(err), safeMessage(err), err)
		return
	}

	batch, err := s.gen.GenerateBatch(r.Context(), p.op, p.tier, p.count, p.source)
	if err != nil {
		s.respondError(w, r, statusFor(err), safeMessage(err), err)
		return
	}
	respondJSON(w, http.StatusCreated, batch)
}

func (s *Server) worksheetPDF(w http.ResponseWriter, r *http.Request) {
	opts := worksheet.DefaultOptions()
	opts.StudentName = r.URL.Query().Get("name")
	if v := r.URL.Query().Get("answers"); v != "" {
		answers, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid answers %q", v), err)
			return
		}
		opts.AnswerKey = answers
	}

	batch, ok := s.batchFromQuery(w, r)
	if !ok {
		return
	}

	// Render into a buffer so a rendering failure can still become a 500.
	var buf bytes.Buffer
	if err := worksheet.WritePDF(&buf, batch, opts); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render worksheet", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="matemagica-%s.pdf"`, batch.ID))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) worksheetCSV(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.batchFromQuery(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := worksheet.WriteCSV(&buf, batch); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render worksheet", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="matemagica-%s.csv"`, batch.ID))
	_, _ = w.Write(buf.Bytes())
}

// batchFromQuery generates a batch from the operation, tier, count and
// source query parameters. On failure it has already written the
// response.
func (s *Server) batchFromQuery(w http.ResponseWriter, r *http.Request) (*exercise.Batch, bool) {
	q := r.URL.Query()
	req := CreateBatchRequest{
		Operation: q.Get("operation"),
		Tier:      q.Get("tier"),
		Source:    q.Get("source"),
	}
	if c := q.Get("count"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid count %q", c), err)
			return nil, false
		}
		req.Count = n
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return nil, false
	}

	p, err := s.parse(req)
	if err != nil {
		s.respondError(w, r, statusFor(err), safeMessage(err), err)
		return nil, false
	}
	batch, err := s.gen.GenerateBatch(r.Context(), p.op, p.tier, p.count, p.source)
	if err != nil {
		s.respondError(w, r, statusFor(err), safeMessage(err), err)
		return nil, false
	}
	return batch, true
}

func (s *Server) parse(req CreateBatchRequest) (batchParams, error) {
	op, err := exercise.ParseOperation(req.Operation)
	if err != nil {
		return batchParams{}, err
	}
	tier, err := exercise.ParseTier(req.Tier)
	if err != nil {
		return batchParams{}, err
	}
	source := exercise.SourceLocal
	if req.Source != "" {
		if source, err = exercise.ParseSource(req.Source); err != nil {
			return batchParams{}, err
		}
	}
	if s.maxCount > 0 && req.Count > s.maxCount {
		return batchParams{}, fmt.Errorf("%w: count %d exceeds the maximum of %d", exercise.ErrInvalidArgument, req.Count, s.maxCount)
	}
	return batchParams{op: op, tier: tier, count: req.Count, source: source}, nil
}
