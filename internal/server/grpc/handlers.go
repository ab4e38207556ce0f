package grpc

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {

	s.logger.Info(ctx, "Registration request")

	sess, err := s.users.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &AuthResponse{Response: "User Created", Token: sess.Token}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {

	sess, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &AuthResponse{Response: "Login Successful", Token: sess.Token}, nil
}

func (s *GRPCServer) ListNotes(ctx context.Context, req *ListNotesRequest) (*ListNotesResponse, error) {
	owner, ok := auth.SubjectFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, common.ErrorUnauthorized)
	}

	notes, err := s.notes.List(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &ListNotesResponse{Notes: notes}, nil
}

func (s *GRPCServer) CreateNote(ctx context.Context, req *CreateNoteRequest) (*CreateNoteResponse, error) {
	owner, ok := auth.SubjectFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, common.ErrorUnauthorized)
	}

	note, err := s.notes.Create(ctx, owner, services.NoteInput{Title: req.Title, Priority: req.Priority, Text: req.Text})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &CreateNoteResponse{Note: note}, nil
}
