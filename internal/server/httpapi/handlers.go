package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Email    *string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type noteRequest struct {
	Title    string `json:"title" binding:"required"`
	Priority int    `json:"priority"`
	Text     string `json:"text"`
}

func (r noteRequest) input() services.NoteInput {
	return services.NoteInput{Title: r.Title, Priority: r.Priority, Text: r.Text}
}

type deleteNotesRequest struct {
	NoteIDs []string `json:"notes_id" binding:"required"`
}

func (s *HTTPServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"response": "pong"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if !s.bind(c, &req) {
		return
	}

	sess, err := s.users.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": "User Created", "token": sess.Token})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if !s.bind(c, &req) {
		return
	}

	sess, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": "Login Successful", "token": sess.Token})
}

func (s *HTTPServer) me(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		s.writeError(c, common.ErrorUnauthorized)
		return
	}
	c.JSON(http.StatusOK, s.users.Me(claims))
}

func (s *HTTPServer) listNotes(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	notes, err := s.notes.List(c.Request.Context(), owner)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeNotes(c, notes)
}

func (s *HTTPServer) searchNotes(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	notes, err := s.notes.Search(c.Request.Context(), owner, c.Query("q"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeNotes(c, notes)
}

func (s *HTTPServer) getNote(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	note, err := s.notes.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *HTTPServer) createNote(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}
	var req noteRequest
	if !s.bind(c, &req) {
		return
	}

	note, err := s.notes.Create(c.Request.Context(), owner, req.input())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *HTTPServer) updateNote(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}
	var req noteRequest
	if !s.bind(c, &req) {
		return
	}

	note, err := s.notes.Update(c.Request.Context(), owner, c.Param("id"), req.input())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *HTTPServer) deleteNote(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	if err := s.notes.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": "Successfully deleted"})
}

func (s *HTTPServer) deleteNotes(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}
	var req deleteNotesRequest
	if !s.bind(c, &req) {
		return
	}

	deleted, missing, err := s.notes.DeleteMany(c.Request.Context(), owner, req.NoteIDs)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if len(deleted) == 0 {
		s.writeError(c, common.ErrorNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": nonNil(deleted), "not_deleted": nonNil(missing)})
}

func (s *HTTPServer) deleteAllNotes(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	n, err := s.notes.DeleteAll(c.Request.Context(), owner)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *HTTPServer) exportNotes(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	exp, err := s.exporter.Export(c.Request.Context(), owner)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

// owner returns the subject id placed by requireAuth.
func (s *HTTPServer) owner(c *gin.Context) (string, bool) {
	owner, ok := auth.SubjectFromContext(c.Request.Context())
	if !ok {
		s.writeError(c, common.ErrorUnauthorized)
	}
	return owner, ok
}

func (s *HTTPServer) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return false
	}
	return true
}

// writeNotes answers 204 when there is nothing to return.
func (s *HTTPServer) writeNotes(c *gin.Context, notes []*models.Note) {
	if len(notes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
