package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/observability"
	"github.com/matzehuels/netgraph/pkg/pipeline"
	"github.com/matzehuels/netgraph/pkg/topology"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if _, ok := contentTypes[format]; !ok {
		writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format))
		return
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, hit, err := s.render(r.Context(), opts, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// render returns the artifact for opts in format, from the cache when possible.
func (s *Server) render(ctx context.Context, opts pipeline.Options, format string) ([]byte, bool, error) {
	opts.Formats = []string{format}
	key := cache.Key(format, opts)

	if data, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	data := result.Artifacts[format]
	if err := s.Cache.Set(ctx, key, data, s.CacheTTL); err != nil {
		s.logger.Warn("cache set failed", "format", format, "err", err)
	}
	return data, false, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// handleIndex embeds the interactive SVG in a minimal page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	svg, _, err := s.render(r.Context(), opts, pipeline.FormatSVG)
	if err != nil {
		writeError(w, r, err)
		return
	}

	title := opts.Title
	if title == "" {
		title = pipeline.DefaultTitle
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>\n<body style=\"margin:0\">\n%s\n</body></html>\n",
		html.EscapeString(title), svg)
}

// requestOptions overlays the query parameters on a copy of the base options.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.Base
	opts.Layers = append([]int(nil), s.Base.Layers...)
	q := r.URL.Query()

	if v := q.Get("layers"); v != "" {
		t, err := topology.Parse(v)
		if err != nil {
			return opts, err
		}
		opts.Layers = t.Counts()
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid seed %q", v)
		}
		opts.Seed = &seed
	}
	if v := q.Get("hover"); v != "" {
		if err := checkHover(opts.Layers, v); err != nil {
			return opts, err
		}
		opts.Hover = v
	}
	if v := q.Get("viz"); v != "" {
		if err := pipeline.ValidateVizType(v); err != nil {
			return opts, err
		}
		opts.VizType = v
	}
	if v := q.Get("captions"); v != "" {
		captions, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid captions flag %q", v)
		}
		opts.Captions = captions
	}
	return opts, nil
}

// checkHover rejects a hover parameter that is malformed or names a neuron
// outside the requested network. Nil layers stand for the default network.
func checkHover(layers []int, hover string) error {
	id, err := pipeline.ParseNeuronID(hover)
	if err != nil {
		return err
	}
	if layers == nil {
		layers = pipeline.DefaultLayers
	}
	t, err := topology.New(layers...)
	if err != nil {
		return err
	}
	if !t.Contains(id) {
		return errors.New(errors.ErrCodeInvalidInput, "hover neuron %s is not in network %s", id, t)
	}
	return nil
}

// statusFor maps an error code onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeAPIError(w, statusFor(err), strings.ToLower(code), errors.UserMessage(err))
}

func writeAPIError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, apiError{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
