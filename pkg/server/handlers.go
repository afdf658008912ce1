package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/shapewordle/pkg/buildinfo"
	"github.com/matzehuels/shapewordle/pkg/cache"
	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/io"
	"github.com/matzehuels/shapewordle/pkg/pipeline"
	"github.com/matzehuels/shapewordle/pkg/store"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/sink"
)

const defaultListLimit = 50

// createRequest carries the three inputs in their file formats plus options.
type createRequest struct {
	Words   json.RawMessage  `json:"words"`
	Mask    json.RawMessage  `json:"mask"`
	Field   json.RawMessage  `json:"field"`
	Options pipeline.Options `json:"options"`
}

type createResponse struct {
	ID         string         `json:"id"`
	LayoutHash string         `json:"layout_hash"`
	Cached     bool           `json:"cached"`
	Stats      pipeline.Stats `json:"stats"`
	Layout     wordle.Layout  `json:"layout"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	in, err := decodeInput(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := s.merge(req.Options)
	if opts.Width > MaxCanvasSide || opts.Height > MaxCanvasSide {
		s.writeError(w, errors.New(errors.ErrCodeInvalidOptions, "canvas larger than %dx%d", MaxCanvasSide, MaxCanvasSide))
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	layout, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), in, opts, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	inputHash, _ := in.Hash()
	data, _ := json.Marshal(layout)
	doc := &store.Document{
		InputHash:  inputHash,
		LayoutHash: cache.Hash(data),
		Layout:     layout,
		Outlines:   in.Field.Boundaries,
	}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+doc.ID)
	writeJSON(w, http.StatusCreated, createResponse{
		ID:         doc.ID,
		LayoutHash: doc.LayoutHash,
		Cached:     hit,
		Stats: pipeline.Stats{
			Regions:     len(layout.Regions),
			Keywords:    opts.KeywordNum,
			Placed:      len(layout.Keywords),
			Fillings:    len(layout.Fillings),
			MaxFontSize: layout.MaxFontSize,
		},
		Layout: layout,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	type summary struct {
		ID         string `json:"id"`
		CreatedAt  string `json:"created_at"`
		LayoutHash string `json:"layout_hash"`
	}
	out := make([]summary, len(docs))
	for i, d := range docs {
		out[i] = summary{ID: d.ID, CreatedAt: d.CreatedAt.Format(time.RFC3339), LayoutHash: d.LayoutHash}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.load(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	var opts []sink.SVGOption
	if bg := q.Get("background"); bg != "" {
		if err := errors.ValidateColor(bg); err != nil {
			s.writeError(w, err)
			return
		}
		opts = append(opts, sink.WithBackground(bg))
	}
	if truthy(q.Get("outlines")) {
		opts = append(opts, sink.WithOutlines(doc.Regions()))
	}
	if q.Get("fillings") == "0" || q.Get("fillings") == "false" {
		opts = append(opts, sink.WithoutFillings())
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(sink.RenderSVG(doc.Layout, opts...))
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.load(w, r)
	if !ok {
		return
	}
	scale := float64(sink.DefaultScale)
	if v := r.URL.Query().Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 8 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %q", v))
			return
		}
		scale = f
	}
	data, err := sink.RenderPNG(doc.Layout, sink.WithScale(scale))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// load fetches the document named by the {id} parameter, writing the error
// response itself when that fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*store.Document, bool) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "layout %s not found", id))
		return nil, false
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return doc, true
}

// merge overlays the request options on the server defaults.
func (s *Server) merge(req pipeline.Options) pipeline.Options {
	opts := s.defaults
	base, _ := json.Marshal(req)
	_ = json.Unmarshal(base, &opts)
	opts.Logger = s.logger
	return opts
}

func decodeInput(req createRequest) (pipeline.Input, error) {
	if len(req.Words) == 0 || len(req.Mask) == 0 || len(req.Field) == 0 {
		return pipeline.Input{}, errors.New(errors.ErrCodeInvalidInput, "words, mask and field are required")
	}
	words, err := io.ReadWords(bytes.NewReader(req.Words))
	if err != nil {
		return pipeline.Input{}, err
	}
	mask, err := io.ReadMask(bytes.NewReader(req.Mask))
	if err != nil {
		return pipeline.Input{}, err
	}
	field, err := io.ReadField(bytes.NewReader(req.Field))
	if err != nil {
		return pipeline.Input{}, err
	}
	return pipeline.Input{Words: words, Mask: mask, Field: field}, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func statusOf(err error) int {
	switch {
	case errors.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
