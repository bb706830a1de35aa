package api

import (
	"net/http"
	"strconv"

	"github.com/example/littlelemon/pkg/repository"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// listAuditLogs godoc
// @Summary Query the audit trail
// @Tags audit
// @Security Bearer
// @Param service query string false "Emitting service, e.g. order-service"
// @Param action query string false "Action, e.g. place_order"
// @Param entity_id query string false "Entity id"
// @Param actor_id query int false "Acting user id"
// @Param limit query int false "Maximum entries, newest first"
// @Success 200 {array} repository.AuditLog
// @Failure 403,503 {object} errorResponse
// @Router /audit-logs [get]
func (s *Server) listAuditLogs(c *gin.Context) {
	filter := repository.AuditFilter{
		Service:  c.Query("service"),
		Action:   c.Query("action"),
		EntityID: c.Query("entity_id"),
	}
	if raw := c.Query("actor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.respondError(c, status.Error(codes.InvalidArgument, "actor_id: A valid integer is required."))
			return
		}
		filter.ActorID = uint(id)
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.respondError(c, status.Error(codes.InvalidArgument, "limit: A valid integer is required."))
			return
		}
		filter.Limit = limit
	}

	logs, err := s.services.Audit.List(c.Request.Context(), callerFrom(c), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
