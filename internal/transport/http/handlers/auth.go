package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/usecase"
)

// AuthHandler serves authentication endpoints.
type AuthHandler struct {
	auth   *usecase.AuthService
	logger *zap.Logger
}

// NewAuthHandler builds a new auth handler instance.
func NewAuthHandler(auth *usecase.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, logger: logger}
}

// Login godoc
// @Summary Authenticate a user
// @Description Verifies credentials within an enterprise and issues an access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body AuthLoginRequest true "Login payload"
// @Success 200 {object} AuthLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.EnterpriseID, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid email or password"},
			{Err: usecase.ErrUserInactive, Status: http.StatusUnauthorized, Message: "account is not active"},
		}, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, AuthLoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		User:        newUserPayload(result.User),
	})
}

// Me godoc
// @Summary Current user profile
// @Description Returns the authenticated user's record.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserPayload
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	c.JSON(http.StatusOK, newUserPayload(user))
}
