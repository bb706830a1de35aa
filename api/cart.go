package api

import (
	"net/http"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type cartRequest struct {
	MenuItemID looseInt `json:"menuitem_id"`
	Quantity   looseInt `json:"quantity"`
}

func (s *Server) listCart(c *gin.Context) {
	lines, err := s.services.Cart.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// addToCart godoc
// @Summary Add a menu item to the cart, replacing any existing line for it
// @Tags cart
// @Security Bearer
// @Param line body cartRequest true "menuitem_id and quantity"
// @Success 201 {object} models.CartItem
// @Failure 400,401,404 {object} errorResponse
// @Router /cart/menu-items [post]
func (s *Server) addToCart(c *gin.Context) {
	caller := callerFrom(c)
	if err := auth.RequireAuthenticated(caller); err != nil {
		s.respondError(c, err)
		return
	}

	var req cartRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	// Zero counts as missing, like an absent field.
	if !req.MenuItemID.Set || !req.Quantity.Set || req.MenuItemID.Value == 0 || req.Quantity.Value == 0 {
		s.respondError(c, status.Error(codes.InvalidArgument, "Both menuitem_id and quantity are required."))
		return
	}
	if req.MenuItemID.Value < 0 {
		s.respondError(c, status.Error(codes.NotFound, "Menu item not found."))
		return
	}

	line, err := s.services.Cart.AddOrReplace(c.Request.Context(), caller, uint(req.MenuItemID.Value), req.Quantity.Value)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (s *Server) clearCart(c *gin.Context) {
	if err := s.services.Cart.Clear(c.Request.Context(), callerFrom(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
