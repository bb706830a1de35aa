package api

import (
	"net/http"
	"strconv"

	"github.com/example/littlelemon/pkg/models"
	"github.com/example/littlelemon/pkg/service"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// listMenuItems godoc
// @Summary List menu items
// @Tags menu
// @Param search query string false "Substring of title or category"
// @Param category query string false "Exact category"
// @Param featured query bool false "Featured items only"
// @Param ordering query string false "title, -title, price or -price"
// @Success 200 {array} models.MenuItem
// @Router /menu-items [get]
func (s *Server) listMenuItems(c *gin.Context) {
	q := service.MenuQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Ordering: c.Query("ordering"),
	}
	if raw, ok := c.GetQuery("featured"); ok && raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			s.respondError(c, status.Error(codes.InvalidArgument, "featured: Must be a valid boolean."))
			return
		}
		q.Featured = &featured
	}

	items, err := s.services.Catalog.List(c.Request.Context(), q)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// createMenuItem godoc
// @Summary Create a menu item
// @Tags menu
// @Security Bearer
// @Param item body service.MenuItemInput true "Menu item"
// @Success 201 {object} models.MenuItem
// @Failure 400,403 {object} errorResponse
// @Router /menu-items [post]
func (s *Server) createMenuItem(c *gin.Context) {
	caller := callerFrom(c)
	// Role check comes before decoding so a non-manager sees 403 whatever the payload.
	if !s.require(c, caller, models.RoleManager) {
		return
	}

	var in service.MenuItemInput
	if err := bindJSON(c, &in); err != nil {
		s.respondError(c, err)
		return
	}
	item, err := s.services.Catalog.Create(c.Request.Context(), caller, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) getMenuItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	item, err := s.services.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// replaceMenuItem checks the role, then existence, then the body, so a
// manager writing to a missing id gets 404 whatever the payload.
func (s *Server) replaceMenuItem(c *gin.Context) {
	caller := callerFrom(c)
	if !s.require(c, caller, models.RoleManager) {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if _, err := s.services.Catalog.Get(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	var in service.MenuItemInput
	if err := bindJSON(c, &in); err != nil {
		s.respondError(c, err)
		return
	}
	item, err := s.services.Catalog.Replace(c.Request.Context(), caller, id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) patchMenuItem(c *gin.Context) {
	caller := callerFrom(c)
	if !s.require(c, caller, models.RoleManager) {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if _, err := s.services.Catalog.Get(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	var in service.MenuItemPatch
	if err := bindJSON(c, &in); err != nil {
		s.respondError(c, err)
		return
	}
	item, err := s.services.Catalog.Patch(c.Request.Context(), caller, id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteMenuItem(c *gin.Context) {
	caller := callerFrom(c)
	if !s.require(c, caller, models.RoleManager) {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.services.Catalog.Delete(c.Request.Context(), caller, id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
