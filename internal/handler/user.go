package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/myrestapi/backend/internal/model"
	"github.com/myrestapi/backend/internal/service"
	"github.com/myrestapi/backend/internal/validation"
)

type UserHandler struct {
	auth     *service.AuthService
	tokens   *service.TokenService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUserHandler(auth *service.AuthService, tokens *service.TokenService, validate *validator.Validate, log zerolog.Logger) *UserHandler {
	return &UserHandler{auth: auth, tokens: tokens, validate: validate, log: log}
}

// Welcome godoc
// @Summary Unsecured welcome endpoint
// @Tags users
// @Produce plain
// @Success 200 {string} string
// @Router /users/welcome [get]
func (h *UserHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome this endpoint is not secure")
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce plain
// @Param request body model.UserRequest true "User record"
// @Success 200 {string} string
// @Failure 400 {object} model.ErrorsResource
// @Failure 409 {object} map[string]string
// @Router /users/new [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req model.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		errs := model.NewErrors("userRequest")
		validation.Collect(err, errs)
		c.JSON(http.StatusBadRequest, newErrorsResource(errs))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.String(http.StatusOK, "%s user added!!", user.Name)
}

// Login godoc
// @Summary Authenticate and issue tokens
// @Description Returns a fresh access token and the user's refresh token,
// @Description creating the refresh token on first login.
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.AuthRequest true "Credentials"
// @Success 200 {object} model.JwtResponse
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	refreshToken, err := h.tokens.CreateRefreshToken(c.Request.Context(), user.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}

	accessToken, err := h.auth.GenerateAccessToken(user)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JwtResponse{
		AccessToken: accessToken,
		Token:       refreshToken.Token,
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new access token
// @Description The refresh token is returned unchanged; an expired token is
// @Description deleted and the caller must sign in again.
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} model.JwtResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/refreshToken [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.tokens.FindByToken(c.Request.Context(), req.Token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err = h.tokens.VerifyExpiration(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	user, err := h.tokens.Owner(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	accessToken, err := h.auth.GenerateAccessToken(user)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JwtResponse{
		AccessToken: accessToken,
		Token:       token.Token,
	})
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	var expired *service.ExpiredTokenError
	switch {
	case errors.As(err, &expired):
		c.JSON(http.StatusForbidden, gin.H{"error": expired.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("user request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
