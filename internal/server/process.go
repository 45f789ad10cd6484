package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gostones/resumeupload/internal/types"
)

var knownSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "C++", "SQL",
	"AWS", "GCP", "Azure", "Docker", "Kubernetes", "Terraform",
	"React", "Machine Learning", "Data Analysis",
}

var skillPatterns = compileSkills(knownSkills)

func compileSkills(skills []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(skills))
	for i, s := range skills {
		// \b fails next to '+', so word edges are spelled out
		out[i] = regexp.MustCompile(`(?i)(^|[^\w])` + regexp.QuoteMeta(s) + `($|[^\w+#])`)
	}
	return out
}

func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	var req types.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.internalError(w, r, fmt.Errorf("failed to decode request body: %w", err))
		return
	}
	if req.FileKey == "" {
		writeJSON(w, http.StatusOK, &types.ProcessResponse{Error: "File key is required"})
		return
	}
	if req.ProcessingType == "" {
		req.ProcessingType = types.ProcessExtract
	}

	switch req.ProcessingType {
	case types.ProcessExtract, types.ProcessAnalyze:
	default:
		writeJSON(w, http.StatusOK, &types.ProcessResponse{
			Error: fmt.Sprintf("Unknown processing type: %s", req.ProcessingType),
		})
		return
	}

	lines, err := s.detector.DetectLines(r.Context(), s.bucket, req.FileKey)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("key", req.FileKey).Msg("text detection failed")
		writeJSON(w, http.StatusOK, &types.ProcessResponse{
			Error: fmt.Sprintf("Resume processing error: %v", err),
		})
		return
	}

	if req.ProcessingType == types.ProcessAnalyze {
		writeJSON(w, http.StatusOK, &types.ProcessResponse{
			Message:        "Resume analysis completed",
			Analysis:       analyze(lines),
			ProcessingType: req.ProcessingType,
		})
		return
	}

	text := joinLines(lines)
	writeJSON(w, http.StatusOK, &types.ProcessResponse{
		Message:        "Resume processed successfully",
		ExtractedText:  &text,
		ProcessingType: req.ProcessingType,
	})
}

// joinLines terminates every line with a newline.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func analyze(lines []string) *types.Analysis {
	text := joinLines(lines)
	skills := []string{}
	for i, re := range skillPatterns {
		if re.MatchString(text) {
			skills = append(skills, knownSkills[i])
		}
	}
	return &types.Analysis{
		Skills:    skills,
		LineCount: len(lines),
		WordCount: len(strings.Fields(text)),
	}
}
