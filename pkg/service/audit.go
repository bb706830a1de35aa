package service

import (
	"context"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/models"
	"github.com/example/littlelemon/pkg/repository"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AuditReader queries the stored audit trail.
type AuditReader interface {
	FindAuditLogs(ctx context.Context, filter repository.AuditFilter) ([]*repository.AuditLog, error)
}

type AuditService struct {
	reader AuditReader
	logger *zap.Logger
}

// NewAuditService wraps reader. A nil reader means no audit store is
// configured and every query reports Unavailable.
func NewAuditService(reader AuditReader, logger *zap.Logger) *AuditService {
	return &AuditService{
		reader: reader,
		logger: logger.Named("audit-service"),
	}
}

func (s *AuditService) List(ctx context.Context, caller auth.Caller, filter repository.AuditFilter) ([]*repository.AuditLog, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	if s.reader == nil {
		return nil, status.Error(codes.Unavailable, "Audit log is not configured.")
	}
	logs, err := s.reader.FindAuditLogs(ctx, filter)
	if err != nil {
		return nil, internal(s.logger, "failed to read audit logs", err)
	}
	return logs, nil
}
