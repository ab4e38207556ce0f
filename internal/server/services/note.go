package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NoteInput carries the user-editable fields of a note.
type NoteInput struct {
	Title    string
	Priority int
	Text     string
}

func (in NoteInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if in.Priority < 0 || in.Priority > math.MaxInt32 {
		return fmt.Errorf("%w: priority must be in [0, %d]", common.ErrorValidation, math.MaxInt32)
	}
	return nil
}

// NoteService implements owner-scoped note operations. The owner is always
// the subject id taken from verified claims.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func (s *NoteService) List(ctx context.Context, owner string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByOwner(ctx, owner)
}

func (s *NoteService) Search(ctx context.Context, owner, phrase string) ([]*models.Note, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, fmt.Errorf("%w: search phrase is required", common.ErrorValidation)
	}
	return s.repomanager.Notes(s.db).SearchByTitle(ctx, owner, phrase)
}

func (s *NoteService) Get(ctx context.Context, owner, id string) (*models.Note, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).GetByID(ctx, owner, id)
}

func (s *NoteService) Create(ctx context.Context, owner string, in NoteInput) (*models.Note, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Create(ctx, &models.Note{
		UserID:   owner,
		Title:    strings.TrimSpace(in.Title),
		Priority: in.Priority,
		Text:     in.Text,
	})
}

func (s *NoteService) Update(ctx context.Context, owner, id string, in NoteInput) (*models.Note, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Update(ctx, &models.Note{
		ID:       id,
		UserID:   owner,
		Title:    strings.TrimSpace(in.Title),
		Priority: in.Priority,
		Text:     in.Text,
	})
}

func (s *NoteService) Delete(ctx context.Context, owner, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).Delete(ctx, owner, id)
}

// DeleteMany removes the listed notes of owner in one transaction. Ids that
// do not name a note of owner are reported in missing and do not abort the
// batch.
func (s *NoteService) DeleteMany(ctx context.Context, owner string, ids []string) (deleted, missing []string, err error) {
	if len(ids) == 0 {
		return nil, nil, fmt.Errorf("%w: no note ids given", common.ErrorValidation)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		deleted, missing = nil, nil
		repo := s.repomanager.Notes(tx)
		for _, id := range ids {
			if !validID(id) {
				missing = append(missing, id)
				continue
			}
			err := repo.Delete(ctx, owner, id)
			switch {
			case err == nil:
				deleted = append(deleted, id)
			case errors.Is(err, common.ErrorNotFound):
				missing = append(missing, id)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return deleted, missing, nil
}

func (s *NoteService) DeleteAll(ctx context.Context, owner string) (int64, error) {
	return s.repomanager.Notes(s.db).DeleteAll(ctx, owner)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
