package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/usecase"
)

// EnterpriseHandler serves the enterprise registry endpoints.
type EnterpriseHandler struct {
	enterprises *usecase.EnterpriseService
	logger      *zap.Logger
}

// NewEnterpriseHandler builds a new enterprise handler instance.
func NewEnterpriseHandler(enterprises *usecase.EnterpriseService, logger *zap.Logger) *EnterpriseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnterpriseHandler{enterprises: enterprises, logger: logger}
}

var enterpriseErrorCases = []ErrorCase{
	{Err: usecase.ErrPermissionDenied, Status: http.StatusForbidden, Message: "insufficient permissions"},
	{Err: usecase.ErrEnterpriseNotFound, Status: http.StatusNotFound, Message: "enterprise not found"},
}

// Create godoc
// @Summary Register an enterprise
// @Tags Enterprises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EnterpriseCreateRequest true "Enterprise payload"
// @Success 201 {object} EnterprisePayload
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/enterprises [post]
func (h *EnterpriseHandler) Create(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req EnterpriseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	enterprise, err := h.enterprises.CreateEnterprise(c.Request.Context(), actor, req.Name)
	if err != nil {
		RespondWithMappedError(c, err, enterpriseErrorCases, http.StatusInternalServerError, "failed to create enterprise")
		return
	}

	c.JSON(http.StatusCreated, newEnterprisePayload(*enterprise))
}

// Get godoc
// @Summary Fetch an enterprise
// @Tags Enterprises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enterprise ID"
// @Success 200 {object} EnterprisePayload
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/enterprises/{id} [get]
func (h *EnterpriseHandler) Get(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	enterprise, err := h.enterprises.GetEnterprise(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, enterpriseErrorCases, http.StatusInternalServerError, "failed to fetch enterprise")
		return
	}

	c.JSON(http.StatusOK, newEnterprisePayload(*enterprise))
}

// List godoc
// @Summary List enterprises
// @Tags Enterprises
// @Produce json
// @Security BearerAuth
// @Success 200 {object} EnterpriseListResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/enterprises [get]
func (h *EnterpriseHandler) List(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	enterprises, err := h.enterprises.ListEnterprises(c.Request.Context(), actor)
	if err != nil {
		RespondWithMappedError(c, err, enterpriseErrorCases, http.StatusInternalServerError, "failed to list enterprises")
		return
	}

	payloads := make([]EnterprisePayload, 0, len(enterprises))
	for _, enterprise := range enterprises {
		payloads = append(payloads, newEnterprisePayload(enterprise))
	}

	c.JSON(http.StatusOK, EnterpriseListResponse{Enterprises: payloads, Total: len(payloads)})
}
