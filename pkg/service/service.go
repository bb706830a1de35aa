// Package service holds the restaurant domain: catalog, carts, orders,
// staff roles, ratings and accounts. Every operation takes the caller
// explicitly and reports failures as gRPC status errors, which the HTTP
// layer maps to response codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/littlelemon/pkg/events"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

func invalid(format string, args ...interface{}) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

func notFound(msg string) error {
	return status.Error(codes.NotFound, msg)
}

func internal(logger *zap.Logger, msg string, err error) error {
	logger.Error(msg, zap.Error(err))
	return status.Error(codes.Internal, msg)
}

// first loads one row into dest. The found flag is false only for a
// missing row; any other failure is returned as err.
func first(ctx context.Context, q *gorm.DB, dest interface{}) (bool, error) {
	err := q.WithContext(ctx).First(dest).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

func publisherOrDiscard(pub events.Publisher) events.Publisher {
	if pub == nil {
		return events.Discard
	}
	return pub
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
