package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/infra/security"
	"github.com/peoplehub/user-access-service/internal/usecase"
)

// UserHandler serves user lifecycle endpoints.
type UserHandler struct {
	users  *usecase.UserService
	logger *zap.Logger
}

// NewUserHandler builds a new user handler instance.
func NewUserHandler(users *usecase.UserService, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{users: users, logger: logger}
}

var userErrorCases = []ErrorCase{
	{Err: usecase.ErrPermissionDenied, Status: http.StatusForbidden, Message: "insufficient permissions"},
	{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
	{Err: usecase.ErrEnterpriseNotFound, Status: http.StatusNotFound, Message: "enterprise not found"},
	{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "email is already registered in this enterprise"},
	{Err: domain.ErrUnknownRole, Status: http.StatusBadRequest, Message: "unknown role code"},
}

// Create godoc
// @Summary Provision a user
// @Description Creates a user after checking the actor's creation rights for the target role.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserCreateRequest true "User payload"
// @Success 201 {object} UserPayload
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), actor, usecase.CreateUserInput{
		EnterpriseID: req.EnterpriseID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     req.Password,
		RoleCode:     req.Role,
		ManagerID:    req.ManagerID,
	})
	if err != nil {
		var policyErr *security.PasswordValidationError
		if errors.As(err, &policyErr) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, policyErr.Error()))
			return
		}
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, newUserPayload(*user))
}

// Get godoc
// @Summary Fetch a user
// @Description Returns a user record, subject to the viewer's visibility rules.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserPayload
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, newUserPayload(*user))
}

// List godoc
// @Summary List enterprise users
// @Description Returns the active users of an enterprise. Requires enterprise-wide visibility.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param enterprise_id query string true "Enterprise ID"
// @Param role query string false "Filter by role code"
// @Success 200 {object} UserListResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	enterpriseID := c.Query("enterprise_id")
	if enterpriseID == "" {
		enterpriseID = viewer.EnterpriseID
	}

	var (
		users []domain.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.users.ListUsersByRole(c.Request.Context(), viewer, enterpriseID, role)
	} else {
		users, err = h.users.ListEnterpriseUsers(c.Request.Context(), viewer, enterpriseID)
	}
	if err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, newUserListResponse(users))
}

// Reports godoc
// @Summary List a manager's direct reports
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manager ID"
// @Success 200 {object} UserListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/reports [get]
func (h *UserHandler) Reports(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	users, err := h.users.ManagerReports(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "failed to list reports")
		return
	}

	c.JSON(http.StatusOK, newUserListResponse(users))
}

// Deactivate godoc
// @Summary Deactivate a user
// @Description Soft-deletes the target after consulting the deactivation rules.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Deactivate(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.users.DeactivateUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "failed to deactivate user")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user deactivated"})
}

// AssignManager godoc
// @Summary Assign a manager to a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body AssignManagerRequest true "Manager assignment payload"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/manager [put]
func (h *UserHandler) AssignManager(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.users.AssignManager(c.Request.Context(), actor, c.Param("id"), req.ManagerID); err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "failed to assign manager")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "manager assigned"})
}
