package service

import (
	"context"
	"errors"
	"testing"

	"github.com/example/littlelemon/pkg/models"
	"github.com/example/littlelemon/pkg/repository"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

type stubAuditReader struct {
	got  repository.AuditFilter
	logs []*repository.AuditLog
	err  error
}

func (r *stubAuditReader) FindAuditLogs(_ context.Context, filter repository.AuditFilter) ([]*repository.AuditLog, error) {
	r.got = filter
	return r.logs, r.err
}

func TestAuditServiceList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.user("manager", models.RoleManager)
	customer := f.user("customer")

	reader := &stubAuditReader{logs: []*repository.AuditLog{{Service: "order-service", Action: "place_order", EntityID: "1"}}}
	svc := NewAuditService(reader, zap.NewNop())

	_, err := svc.List(ctx, customer, repository.AuditFilter{})
	wantCode(t, err, codes.PermissionDenied)

	logs, err := svc.List(ctx, manager, repository.AuditFilter{Service: "order-service", Limit: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 1 || reader.got.Service != "order-service" || reader.got.Limit != 5 {
		t.Errorf("logs = %v, filter = %+v", logs, reader.got)
	}

	reader.err = errors.New("mongo down")
	_, err = svc.List(ctx, manager, repository.AuditFilter{})
	wantCode(t, err, codes.Internal)

	_, err = NewAuditService(nil, zap.NewNop()).List(ctx, manager, repository.AuditFilter{})
	wantCode(t, err, codes.Unavailable)
}
