package server

import (
	"net/http"

	"github.com/matzehuels/sectionflow/pkg/buildinfo"
	"github.com/matzehuels/sectionflow/pkg/document"
	serrors "github.com/matzehuels/sectionflow/pkg/errors"
	"github.com/matzehuels/sectionflow/pkg/httputil"
	"github.com/matzehuels/sectionflow/pkg/pipeline"
)

// LayoutIDHeader carries the ID of the computed layout.
const LayoutIDHeader = "X-Layout-ID"

// LayoutResponse is the body of POST /v1/layout.
type LayoutResponse struct {
	Layout    document.Layout   `json:"layout"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cache     CacheStatus       `json:"cache"`
}

// CacheStatus reports which stages were served from cache.
type CacheStatus struct {
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := LayoutResponse{
		Layout: res.Layout,
		Cache:  CacheStatus{Layout: res.CacheInfo.LayoutHit, Render: res.CacheInfo.RenderHit},
	}
	// The layout itself is the JSON artifact.
	for format, data := range res.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}

	w.Header().Set(LayoutIDHeader, res.Layout.ID)
	_ = httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set(LayoutIDHeader, res.Layout.ID)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := httputil.DecodeJSON(r, &opts, s.cfg.MaxBody); err != nil {
		s.fail(w, r, err)
		return opts, false
	}
	if opts.Document == nil {
		s.fail(w, r, serrors.New(serrors.ErrCodeInvalidInput, "document is required"))
		return opts, false
	}
	opts.Logger = s.logger
	return opts, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		return
	}
	s.logger.Debug("rejected request", "path", r.URL.Path, "error", err)
}
