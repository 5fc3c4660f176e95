package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aretw0/jot/pkg/core"
)

// --- Notes ---

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	found := s.store.Filter(query.Get("title"), query["tag"])
	sendResult(w, http.StatusOK, fmt.Sprintf("Found %d notes", len(found)), found)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var data core.NoteData
	if err := decode(w, r, &data); err != nil {
		s.sendError(w, r, err)
		return
	}

	raw, err := s.store.CreateNote(r.Context(), data)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	note, _ := s.store.Note(raw.ID)
	w.Header().Set("Location", "/notes/"+raw.ID)
	sendResult(w, http.StatusCreated, "Created note", note)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	note, ok := s.store.Note(id)
	if !ok {
		sendResult(w, http.StatusNotFound, "Note not found", nil)
		return
	}
	sendResult(w, http.StatusOK, "Found note", note)
}

// updateNote answers with the updated note, whose ID may differ from the
// one in the path; Location points at the new one.
func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var data core.NoteData
	if err := decode(w, r, &data); err != nil {
		s.sendError(w, r, err)
		return
	}

	raw, found, err := s.store.UpdateNote(r.Context(), id, data)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	if !found {
		sendResult(w, http.StatusNotFound, "Note not found", nil)
		return
	}
	note, _ := s.store.Note(raw.ID)
	w.Header().Set("Location", "/notes/"+raw.ID)
	sendResult(w, http.StatusOK, "Updated note", note)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Note(id); !ok {
		sendResult(w, http.StatusNotFound, "Note not found", nil)
		return
	}
	if err := s.store.DeleteNote(r.Context(), id); err != nil {
		s.sendError(w, r, err)
		return
	}
	sendResult(w, http.StatusOK, "Deleted note", nil)
}

// --- Tags ---

type tagLabel struct {
	Label string `json:"label" validate:"required"`
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags := s.store.Tags()
	sendResult(w, http.StatusOK, fmt.Sprintf("Found %d tags", len(tags)), tags)
}

// createTag accepts {"label": ...} and, optionally, the ID to use.
func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var tag core.Tag
	if err := decode(w, r, &tag); err != nil {
		s.sendError(w, r, err)
		return
	}

	if tag.ID == "" {
		created, err := s.store.NewTag(r.Context(), tag.Label)
		if err != nil {
			s.sendError(w, r, err)
			return
		}
		sendResult(w, http.StatusCreated, "Created tag", created)
		return
	}

	if _, exists := s.store.Tag(tag.ID); exists {
		sendResult(w, http.StatusConflict, "Tag already exists", nil)
		return
	}
	if err := s.store.AddTag(r.Context(), tag); err != nil {
		s.sendError(w, r, err)
		return
	}
	sendResult(w, http.StatusCreated, "Created tag", tag)
}

func (s *Server) updateTag(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body tagLabel
	if err := decode(w, r, &body); err != nil {
		s.sendError(w, r, err)
		return
	}
	if _, ok := s.store.Tag(id); !ok {
		sendResult(w, http.StatusNotFound, "Tag not found", nil)
		return
	}
	if err := s.store.UpdateTag(r.Context(), id, body.Label); err != nil {
		s.sendError(w, r, err)
		return
	}
	tag, _ := s.store.Tag(id)
	sendResult(w, http.StatusOK, "Updated tag", tag)
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Tag(id); !ok {
		sendResult(w, http.StatusNotFound, "Tag not found", nil)
		return
	}
	if err := s.store.DeleteTag(r.Context(), id); err != nil {
		s.sendError(w, r, err)
		return
	}
	sendResult(w, http.StatusOK, "Deleted tag", nil)
}

// --- Theme ---

type themeBody struct {
	Theme string `json:"theme" validate:"required"`
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	sendResult(w, http.StatusOK, s.store.Theme().String(), s.store.Palette())
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decode(w, r, &body); err != nil {
		s.sendError(w, r, err)
		return
	}
	theme, err := core.ParseTheme(body.Theme)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	if err := s.store.SetTheme(r.Context(), theme); err != nil {
		s.sendError(w, r, err)
		return
	}
	sendResult(w, http.StatusOK, theme.String(), s.store.Palette())
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.store.ToggleTheme(r.Context())
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	sendResult(w, http.StatusOK, theme.String(), s.store.Palette())
}
