package api

import (
	"net/http"

	"github.com/example/littlelemon/pkg/service"
	"github.com/gin-gonic/gin"
)

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// register godoc
// @Summary Create an account
// @Tags auth
// @Param user body service.RegisterInput true "Account"
// @Success 201 {object} userResponse
// @Failure 400 {object} errorResponse
// @Router /auth/users [post]
func (s *Server) register(c *gin.Context) {
	var in service.RegisterInput
	if err := bindJSON(c, &in); err != nil {
		s.respondError(c, err)
		return
	}
	user, err := s.services.Accounts.Register(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// login godoc
// @Summary Obtain a bearer token
// @Tags auth
// @Param credentials body service.LoginInput true "Credentials"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} errorResponse
// @Router /auth/token/login [post]
func (s *Server) login(c *gin.Context) {
	var in service.LoginInput
	if err := bindJSON(c, &in); err != nil {
		s.respondError(c, err)
		return
	}
	token, err := s.services.Accounts.Login(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AuthToken: token})
}

func (s *Server) me(c *gin.Context) {
	profile, err := s.services.Accounts.Me(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
