package api

import (
	"net/http"

	"github.com/example/littlelemon/pkg/models"
	"github.com/gin-gonic/gin"
)

type memberRequest struct {
	Username string `json:"username" binding:"required"`
}

// groupRoutes mounts list/add/remove for one staff role.
func (s *Server) groupRoutes(g *gin.RouterGroup, role models.Role) {
	g.GET("", s.listMembers(role))
	g.POST("", s.addMember(role))
	g.DELETE("/:id", s.removeMember(role))
}

func (s *Server) listMembers(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.services.Roles.ListMembers(c.Request.Context(), callerFrom(c), role)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func (s *Server) addMember(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := callerFrom(c)
		if !s.require(c, caller, models.RoleManager) {
			return
		}
		var req memberRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		user, err := s.services.Roles.AddMember(c.Request.Context(), caller, role, req.Username)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func (s *Server) removeMember(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := callerFrom(c)
		if !s.require(c, caller, models.RoleManager) {
			return
		}
		id, err := pathID(c, "id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		if err := s.services.Roles.RemoveMember(c.Request.Context(), caller, role, id); err != nil {
			s.respondError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}
