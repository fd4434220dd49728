package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-craft/internal/enhance"
	"github.com/jonathan/resume-craft/internal/types"
)

// PolishRequest is the body of POST /polish
type PolishRequest struct {
	Text  string `json:"text" validate:"max=10000"`
	Label string `json:"label" validate:"max=200"`
}

// TextResponse carries generated text
type TextResponse struct {
	Text string `json:"text"`
}

// EnhanceRequest is the body of POST /enhance
type EnhanceRequest struct {
	enhance.Target
	Text string `json:"text" validate:"max=10000"`
}

// SummaryRequest is the body of POST /summary/generate. When Highlights is empty the
// experience entries of the current document are used.
type SummaryRequest struct {
	Role       string `json:"role" validate:"max=200"`
	Highlights string `json:"highlights" validate:"max=10000"`
}

// AcceptedResponse acknowledges background work
type AcceptedResponse struct {
	Status  string `json:"status"`
	Started int    `json:"started"`
}

// handlePolish enhances text and returns it without touching the document
func (s *Server) handlePolish(w http.ResponseWriter, r *http.Request) {
	var req PolishRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: s.enhancer.Enhance(r.Context(), req.Text, req.Label)})
}

// handleEnhance starts a background enhancement whose result is written to the target field
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req EnhanceRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if req.SectionID == "" && req.Field == "" {
		s.errorFromErr(w, &ErrValidation{Field: "field", Message: "personal info targets need a field"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.jsonResponse(w, http.StatusAccepted, AcceptedResponse{Status: "accepted"})
		return
	}
	s.dispatcher.Go(r.Context(), req.Target, req.Text)
	s.jsonResponse(w, http.StatusAccepted, AcceptedResponse{Status: "accepted", Started: 1})
}

// handlePolishSection enhances every text field of a section in the background
func (s *Server) handlePolishSection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	started, found := s.dispatcher.PolishSection(r.Context(), id)
	if !found {
		s.errorFromErr(w, &ErrNotFound{Resource: "section", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusAccepted, AcceptedResponse{Status: "accepted", Started: started})
}

// handleGenerateSummary writes a professional summary from a role and highlights
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	doc := s.session.Snapshot().Document
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = doc.PersonalInfo.Title
	}
	highlights := strings.TrimSpace(req.Highlights)
	if highlights == "" {
		highlights = experienceHighlights(doc)
	}
	if role == "" && highlights == "" {
		s.errorFromErr(w, &ErrValidation{Field: "role", Message: "role or highlights are required"})
		return
	}

	s.jsonResponse(w, http.StatusOK, TextResponse{Text: s.enhancer.GenerateSummary(r.Context(), role, highlights)})
}

// experienceHighlights flattens the visible experience entries into one line per entry
func experienceHighlights(doc types.ResumeData) string {
	var lines []string
	for _, sec := range doc.Sections {
		list, ok := sec.Content.(types.ExperienceList)
		if !ok || !sec.IsVisible {
			continue
		}
		for _, e := range list {
			parts := make([]string, 0, 3)
			for _, p := range []string{e.Role, e.Company, e.Description} {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
			if len(parts) > 0 {
				lines = append(lines, strings.Join(parts, ", "))
			}
		}
	}
	return strings.Join(lines, "; ")
}
