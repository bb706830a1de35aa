package api

import (
	"net/http"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errNotFound = status.Error(codes.NotFound, "Not found.")

type errorResponse struct {
	Detail string `json:"detail"`
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.AlreadyExists, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts the request with {"detail": msg}. Errors that are
// not status errors, and internal ones, are logged and hidden.
func (s *Server) respondError(c *gin.Context, err error) {
	st, ok := status.FromError(err)
	if !ok {
		s.logger.Error("Unhandled error",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		st = status.New(codes.Internal, "")
	}

	code := httpStatus(st.Code())
	msg := st.Message()
	if code == http.StatusInternalServerError {
		msg = "A server error occurred."
	}
	c.AbortWithStatusJSON(code, errorResponse{Detail: msg})
}

// require runs the role predicate at the edge, before any decoding or
// lookup, and reports whether the handler may continue.
func (s *Server) require(c *gin.Context, caller auth.Caller, role models.Role) bool {
	if err := auth.Require(caller, role); err != nil {
		s.respondError(c, err)
		return false
	}
	return true
}
