package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
	"github.com/google/uuid"
)

type fakeUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User

	existsErr error
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Exists(_ context.Context, login string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byName[login]
	return ok, nil
}

type fakeNotesRepo struct {
	mu    sync.Mutex
	notes []*models.Note

	listErr   error
	deleteErr error
}

func (f *fakeNotesRepo) Create(_ context.Context, n *models.Note) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().Add(time.Duration(len(f.notes)) * time.Millisecond)
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeNotesRepo) ListByOwner(_ context.Context, userID string) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.filter(func(n *models.Note) bool { return n.UserID == userID }), nil
}

func (f *fakeNotesRepo) SearchByTitle(_ context.Context, userID, phrase string) ([]*models.Note, error) {
	return f.filter(func(n *models.Note) bool { return n.UserID == userID && containsFold(n.Title, phrase) }), nil
}

func (f *fakeNotesRepo) GetByID(_ context.Context, userID, id string) (*models.Note, error) {
	got := f.filter(func(n *models.Note) bool { return n.UserID == userID && n.ID == id })
	if len(got) == 0 {
		return nil, common.ErrorNotFound
	}
	return got[0], nil
}

func (f *fakeNotesRepo) Update(_ context.Context, note *models.Note) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notes {
		if n.ID == note.ID && n.UserID == note.UserID {
			n.Title, n.Priority, n.Text = note.Title, note.Priority, note.Text
			return n, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeNotesRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, n := range f.notes {
		if n.ID == id && n.UserID == userID {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeNotesRepo) DeleteAll(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*models.Note
	var n int64
	for _, note := range f.notes {
		if note.UserID == userID {
			n++
			continue
		}
		kept = append(kept, note)
	}
	f.notes = kept
	return n, nil
}

func (f *fakeNotesRepo) filter(keep func(*models.Note) bool) []*models.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Note
	for _, n := range f.notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	notes *fakeNotesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), notes: &fakeNotesRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository              { return m.notes }

// countingHasher records how often each operation ran.
type countingHasher struct {
	inner   Hasher
	hashes  atomic.Int32
	verifys atomic.Int32

	mu       sync.Mutex
	verified []string
}

func (c *countingHasher) Hash(ctx context.Context, password string) (string, error) {
	c.hashes.Add(1)
	return c.inner.Hash(ctx, password)
}

func (c *countingHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	c.verifys.Add(1)
	c.mu.Lock()
	c.verified = append(c.verified, digest)
	c.mu.Unlock()
	return c.inner.Verify(ctx, password, digest)
}

func (c *countingHasher) lastVerified() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.verified) == 0 {
		return ""
	}
	return c.verified[len(c.verified)-1]
}
