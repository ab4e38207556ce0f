package httpapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/google/uuid"
)

type stubUsers struct {
	mu     sync.Mutex
	codec  *auth.TokenCodec
	byName map[string]*models.User
	pass   map[string]string
}

func newStubUsers(codec *auth.TokenCodec) *stubUsers {
	return &stubUsers{codec: codec, byName: map[string]*models.User{}, pass: map[string]string{}}
}

func (s *stubUsers) Register(_ context.Context, username, password string, email *string) (*services.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: uuid.NewString(), UserName: username, Email: email}
	s.byName[username] = u
	s.pass[username] = password
	return s.session(u)
}

func (s *stubUsers) Login(_ context.Context, username, password string) (*services.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byName[username]
	if !ok || s.pass[username] != password {
		return nil, common.ErrorUnauthorized
	}
	return s.session(u)
}

func (s *stubUsers) Me(claims *auth.Claims) services.Identity {
	return services.Identity{ID: claims.UserID, Username: claims.Username, Email: claims.Email}
}

func (s *stubUsers) session(u *models.User) (*services.Session, error) {
	tok, err := s.codec.Issue(auth.ClaimsInput{SubjectID: u.ID, Username: u.UserName, Email: u.Email})
	if err != nil {
		return nil, err
	}
	return &services.Session{User: u, Token: tok}, nil
}

type stubNotes struct {
	mu    sync.Mutex
	notes map[string][]*models.Note
	err   error
}

func newStubNotes() *stubNotes {
	return &stubNotes{notes: map[string][]*models.Note{}}
}

func (s *stubNotes) List(_ context.Context, owner string) ([]*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]*models.Note(nil), s.notes[owner]...), nil
}

func (s *stubNotes) Search(ctx context.Context, owner, phrase string) ([]*models.Note, error) {
	if phrase == "" {
		return nil, fmt.Errorf("%w: empty phrase", common.ErrorValidation)
	}
	all, err := s.List(ctx, owner)
	var out []*models.Note
	for _, n := range all {
		if n.Title == phrase {
			out = append(out, n)
		}
	}
	return out, err
}

func (s *stubNotes) Get(_ context.Context, owner, id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes[owner] {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *stubNotes) Create(_ context.Context, owner string, in services.NoteInput) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	n := &models.Note{ID: uuid.NewString(), UserID: owner, Title: in.Title, Priority: in.Priority, Text: in.Text}
	s.notes[owner] = append([]*models.Note{n}, s.notes[owner]...)
	return n, nil
}

func (s *stubNotes) Update(ctx context.Context, owner, id string, in services.NoteInput) (*models.Note, error) {
	n, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	n.Title, n.Priority, n.Text = in.Title, in.Priority, in.Text
	return n, nil
}

func (s *stubNotes) Delete(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes[owner] {
		if n.ID == id {
			s.notes[owner] = append(s.notes[owner][:i], s.notes[owner][i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (s *stubNotes) DeleteMany(ctx context.Context, owner string, ids []string) ([]string, []string, error) {
	var deleted, missing []string
	for _, id := range ids {
		if err := s.Delete(ctx, owner, id); err != nil {
			missing = append(missing, id)
			continue
		}
		deleted = append(deleted, id)
	}
	return deleted, missing, nil
}

func (s *stubNotes) DeleteAll(_ context.Context, owner string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.notes[owner]))
	delete(s.notes, owner)
	return n, nil
}

type stubExporter struct {
	res *services.Export
	err error
}

func (s *stubExporter) Export(_ context.Context, owner string) (*services.Export, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}
