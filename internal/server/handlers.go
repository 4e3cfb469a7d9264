package server

import (
	"encoding/json"
	"net/http"

	"github.com/dsai-cliques/cliques/pkg/buildinfo"
	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/panel"
	"github.com/dsai-cliques/cliques/pkg/scene"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

// peopleResponse lists the selection control entries.
type peopleResponse struct {
	Options []string `json:"options"`
}

// renderResponse is one render pass. Scene is omitted when the selection
// failed, so the page keeps drawing its current scene.
type renderResponse struct {
	ID        string       `json:"id"`
	Selection string       `json:"selection"`
	Panel     panel.Panel  `json:"panel"`
	Markdown  string       `json:"markdown"`
	Scene     *scene.Scene `json:"scene,omitempty"`
	Error     *errorBody   `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status        string         `json:"status"`
	People        int            `json:"people"`
	Relationships int            `json:"relationships"`
	Build         buildinfo.Info `json:"build"`
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, peopleResponse{Options: selection.Options(snap.Network)})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("person")
	snap := s.Snapshot()

	res, err := s.runner.Select(r.Context(), snap, input, s.opts)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("render pass failed", "person", input, "error", err)
		}
		writeJSON(w, status, renderResponse{
			ID:        res.ID,
			Selection: input,
			Panel:     res.Panel,
			Markdown:  res.Panel.Markdown(),
			Error:     &errorBody{Code: codeOf(err), Message: errors.UserMessage(err)},
		})
		return
	}

	sc := res.Scene
	writeJSON(w, http.StatusOK, renderResponse{
		ID:        res.ID,
		Selection: res.Selection,
		Panel:     res.Panel,
		Markdown:  res.Panel.Markdown(),
		Scene:     &sc,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		People:        snap.Network.PersonCount(),
		Relationships: snap.Network.RelationshipCount(),
		Build:         buildinfo.Get(),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch code := errors.GetCode(err); code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeAmbiguousName:
		return http.StatusConflict
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDataset,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(err error) string {
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return string(errors.ErrCodeInternal)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
