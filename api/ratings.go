package api

import (
	"net/http"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/service"
	"github.com/gin-gonic/gin"
)

func (s *Server) listRatings(c *gin.Context) {
	ratings, err := s.services.Ratings.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// createRating godoc
// @Summary Rate a menu item
// @Description Ratings range from 0 to 5. A user rates each item once.
// @Tags ratings
// @Security Bearer
// @Param rating body service.RatingInput true "Rating"
// @Success 201 {object} models.Rating
// @Failure 400,401 {object} errorResponse
// @Router /ratings [post]
func (s *Server) createRating(c *gin.Context) {
	caller := callerFrom(c)
	if err := auth.RequireAuthenticated(caller); err != nil {
		s.respondError(c, err)
		return
	}
	var in service.RatingInput
	if err := bindJSON(c, &in); err != nil {
		s.respondError(c, err)
		return
	}

	rating, err := s.services.Ratings.Create(c.Request.Context(), caller, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}
