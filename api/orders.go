package api

import (
	"net/http"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/models"
	"github.com/example/littlelemon/pkg/service"
	"github.com/gin-gonic/gin"
)

// listOrders godoc
// @Summary List orders visible to the caller
// @Description Managers see every order, delivery crew the orders assigned to them, customers their own.
// @Tags orders
// @Security Bearer
// @Param ordering query string false "date, -date, total or -total"
// @Success 200 {array} models.Order
// @Failure 401 {object} errorResponse
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.services.Orders.List(c.Request.Context(), callerFrom(c), c.Query("ordering"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// placeOrder godoc
// @Summary Check out the caller's cart
// @Tags orders
// @Security Bearer
// @Success 201 {object} models.Order
// @Failure 400,401 {object} errorResponse
// @Router /orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	order, err := s.services.Orders.Place(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) getOrder(c *gin.Context) {
	caller := callerFrom(c)
	if err := auth.RequireAuthenticated(caller); err != nil {
		s.respondError(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	order, err := s.services.Orders.Get(c.Request.Context(), caller, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) replaceOrder(c *gin.Context) {
	caller := callerFrom(c)
	if !s.require(c, caller, models.RoleManager) {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if _, err := s.services.Orders.Get(c.Request.Context(), caller, id); err != nil {
		s.respondError(c, err)
		return
	}
	var patch service.OrderPatch
	if err := bindJSON(c, &patch); err != nil {
		s.respondError(c, err)
		return
	}

	order, err := s.services.Orders.Replace(c.Request.Context(), caller, id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// patchOrder godoc
// @Summary Partially update an order
// @Description Managers may set status and delivery_crew. Delivery crew may send status only.
// @Tags orders
// @Security Bearer
// @Param id path int true "Order id"
// @Success 200 {object} models.Order
// @Failure 400,401,403,404 {object} errorResponse
// @Router /orders/{id} [patch]
func (s *Server) patchOrder(c *gin.Context) {
	caller := callerFrom(c)
	if err := auth.RequireAuthenticated(caller); err != nil {
		s.respondError(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if _, err := s.services.Orders.Get(c.Request.Context(), caller, id); err != nil {
		s.respondError(c, err)
		return
	}
	if !caller.IsDeliveryCrew() && !s.require(c, caller, models.RoleManager) {
		return
	}
	var patch service.OrderPatch
	if err := bindJSON(c, &patch); err != nil {
		s.respondError(c, err)
		return
	}

	order, err := s.services.Orders.Patch(c.Request.Context(), caller, id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	caller := callerFrom(c)
	if !s.require(c, caller, models.RoleManager) {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.services.Orders.Delete(c.Request.Context(), caller, id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
