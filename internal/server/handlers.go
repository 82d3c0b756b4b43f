package server

import (
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/reorder"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListTemplates lists the selectable templates, default first.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	all := rendering.Templates()
	infos := make([]types.TemplateInfo, 0, len(all))
	for i, tmpl := range all {
		info := types.TemplateInfo{Name: tmpl.Name(), Default: i == 0, Pinned: []string{}}
		if layout, ok := tmpl.(*rendering.Layout); ok {
			for _, key := range layout.Pinned {
				info.Pinned = append(info.Pinned, string(key))
			}
		}
		infos = append(infos, info)
	}
	s.jsonResponse(w, http.StatusOK, infos)
}

// handleCreateSession starts a session and returns its bearer token.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.store.Create()
	token, expiresAt, err := s.tokens.GenerateToken(sess.ID)
	if err != nil {
		s.store.Delete(sess.ID)
		log.Printf("[server] failed to issue session token: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.jsonResponse(w, http.StatusCreated, types.CreateSessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.store.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissError(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.DismissError()
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req types.UpdateContactRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := sess.UpdateContact(req.Field, req.Value); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleUpdateSummary(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req types.UpdateSummaryRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}
	sess.UpdateSummary(req.Summary)
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleAddItem appends an item. An empty body adds a blank item.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	section, err := resume.ParseSectionKey(r.PathValue("section"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	var req types.AddItemRequest
	if r.ContentLength != 0 {
		if err := s.decodeJSON(w, r, &req); err != nil {
			s.errorFromErr(w, err)
			return
		}
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}

	id, err := sess.AddItem(section, req.Fields)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, types.AddItemResponse{ID: id})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	section, err := resume.ParseSectionKey(r.PathValue("section"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	var req types.UpdateItemRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}

	if err := sess.UpdateItem(section, r.PathValue("id"), req.Field, req.Value); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	section, err := resume.ParseSectionKey(r.PathValue("section"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := sess.RemoveItem(section, r.PathValue("id")); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleMoveSection moves a section in the section order. Out-of-range positions are
// not an error; they report moved=false.
func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req types.MoveRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}
	moved := sess.MoveSection(*req.From, *req.To)
	s.jsonResponse(w, http.StatusOK, types.MoveResponse{Moved: moved})
}

func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	section, err := resume.ParseSectionKey(r.PathValue("section"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	var req types.MoveRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}

	moved, err := sess.MoveItem(section, *req.From, *req.To)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.MoveResponse{Moved: moved})
}

// dragRequest decodes and checks the body shared by drag begin and enter.
func (s *Server) dragRequest(w http.ResponseWriter, r *http.Request) (reorder.Scope, int, bool) {
	var req types.DragRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return "", 0, false
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return "", 0, false
	}
	scope, err := reorder.ParseScope(req.Scope)
	if err != nil {
		s.errorFromErr(w, err)
		return "", 0, false
	}
	return scope, *req.Index, true
}

// handleDragBegin records the drag source. The response carries the pending drag,
// which is empty when the index addressed nothing.
func (s *Server) handleDragBegin(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	scope, index, ok := s.dragRequest(w, r)
	if !ok {
		return
	}
	sess.BeginDrag(scope, index)
	s.jsonResponse(w, http.StatusOK, sess.Snapshot().Drag)
}

func (s *Server) handleDragEnter(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	scope, index, ok := s.dragRequest(w, r)
	if !ok {
		return
	}
	sess.EnterDrag(scope, index)
	s.jsonResponse(w, http.StatusOK, sess.Snapshot().Drag)
}

func (s *Server) handleDragDrop(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	moved := sess.Drop()
	s.jsonResponse(w, http.StatusOK, types.MoveResponse{Moved: moved})
}

func (s *Server) handleDragCancel(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.CancelDrag()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req types.SelectTemplateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := sess.SelectTemplate(req.Template); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handlePreviewHTML(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	body, err := sess.PreviewHTML()
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handlePreviewLaTeX(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	body, err := sess.PreviewLaTeX()
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
