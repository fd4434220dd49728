package server

import (
	"io"
	"net/http"

	"github.com/jonathan/resume-craft/internal/document"
	"github.com/jonathan/resume-craft/internal/export"
	"github.com/jonathan/resume-craft/internal/projection"
	"github.com/jonathan/resume-craft/internal/rendering"
)

// handleGetDocument returns the current snapshot
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

// handleCommand decodes one edit command and applies it to the session.
// A command whose target does not exist answers 200 with applied=false.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	snap := s.session.Snapshot()
	cmd, err := document.DecodeCommand(body, snap.Document, s.session.Allocator())
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	res, err := s.session.Dispatch(cmd)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// projectionOptions applies the ?present= override to the server default
func (s *Server) projectionOptions(r *http.Request) projection.Options {
	opts := projection.Options{PresentLabel: s.presentLabel}
	if present := r.URL.Query().Get("present"); present != "" {
		opts.PresentLabel = present
	}
	return opts
}

func (s *Server) currentProjection(r *http.Request) projection.Document {
	return projection.Project(s.session.Snapshot().Document, s.projectionOptions(r))
}

// handlePreview renders the print-ready HTML page
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	html, err := rendering.RenderHTML(s.currentProjection(r), rendering.HTMLOptions{Lang: r.URL.Query().Get("lang")})
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html) //nolint:errcheck
}

// handlePreviewJSON returns the projection tree
func (s *Server) handlePreviewJSON(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.currentProjection(r))
}

// handleExportLaTeX returns the LaTeX source of the résumé
func (s *Server) handleExportLaTeX(w http.ResponseWriter, r *http.Request) {
	tex, err := rendering.RenderLaTeX(s.currentProjection(r))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.tex"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, tex) //nolint:errcheck
}

// handleExportPDF prints the preview with headless Chrome
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.errorFromErr(w, &ErrUnavailable{Feature: "PDF export"})
		return
	}
	pdf, err := export.PDF(r.Context(), s.printer, s.currentProjection(r))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf) //nolint:errcheck
}
