package usecase

import (
	"context"
	"fmt"

	"crime-report/internal/data/repository"
	"crime-report/internal/dto/response"
	"crime-report/pkg/database"

	"go.uber.org/zap"
)

// DebugService answers the operational introspection routes. Errors are
// logged in full but returned without driver detail.
type DebugService interface {
	DatabaseInfo(ctx context.Context) *response.DatabaseInfoResponse
	UsersCount(ctx context.Context) (*response.UsersCountResponse, error)
	Tables(ctx context.Context) (*response.TablesResponse, error)
}

type debugService struct {
	repo        *repository.Repository
	databaseURL string
	log         *zap.Logger
}

func NewDebugService(repo *repository.Repository, databaseURL string, log *zap.Logger) DebugService {
	return &debugService{
		repo:        repo,
		databaseURL: databaseURL,
		log:         log,
	}
}

func (s *debugService) DatabaseInfo(ctx context.Context) *response.DatabaseInfoResponse {
	return &response.DatabaseInfoResponse{
		DatabaseURL: database.MaskURL(s.databaseURL),
		EngineName:  s.repo.Schema.Dialect(),
		IsPostgres:  database.ParseURL(s.databaseURL).Dialect == database.DialectPostgres,
	}
}

func (s *debugService) UsersCount(ctx context.Context) (*response.UsersCountResponse, error) {
	count, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Debug users count failed", zap.Error(err))
		return nil, fmt.Errorf("failed to count users")
	}
	return &response.UsersCountResponse{UsersCount: count}, nil
}

func (s *debugService) Tables(ctx context.Context) (*response.TablesResponse, error) {
	tables, err := s.repo.Schema.Tables(ctx)
	if err != nil {
		s.log.Error("Debug table listing failed", zap.Error(err))
		return nil, fmt.Errorf("failed to list tables")
	}
	return &response.TablesResponse{Tables: tables}, nil
}
