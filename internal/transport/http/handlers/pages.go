package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/usecase"
)

// PageAccessHandler serves the page catalog and override management endpoints.
type PageAccessHandler struct {
	access *usecase.PageAccessService
	logger *zap.Logger
}

// NewPageAccessHandler builds a new page access handler instance.
func NewPageAccessHandler(access *usecase.PageAccessService, logger *zap.Logger) *PageAccessHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageAccessHandler{access: access, logger: logger}
}

var pageAccessErrorCases = []ErrorCase{
	{Err: usecase.ErrPermissionDenied, Status: http.StatusForbidden, Message: "insufficient permissions"},
	{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
	{Err: usecase.ErrCrossEnterpriseDenied, Status: http.StatusForbidden, Message: "cannot manage user from different enterprise"},
	{Err: usecase.ErrCannotManageAdminAccess, Status: http.StatusForbidden, Message: "cannot modify access for executive roles"},
	{Err: domain.ErrUnknownPage, Status: http.StatusBadRequest, Message: "unknown page id"},
}

// Catalog godoc
// @Summary List the page catalog
// @Description Returns every page with its display name and default role set.
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PageCatalogResponse
// @Router /api/v1/pages [get]
func (h *PageAccessHandler) Catalog(c *gin.Context) {
	pages := domain.Pages()
	payloads := make([]PagePayload, 0, len(pages))
	for _, page := range pages {
		roles := page.DefaultAllowedRoles()
		codes := make([]string, 0, len(roles))
		for _, role := range roles {
			codes = append(codes, string(role))
		}
		payloads = append(payloads, PagePayload{
			ID:           string(page),
			DisplayName:  page.DisplayName(),
			DefaultRoles: codes,
		})
	}

	c.JSON(http.StatusOK, PageCatalogResponse{Pages: payloads})
}

// MyPages godoc
// @Summary List the caller's accessible pages
// @Description Returns role defaults plus grants minus revokes for the authenticated user.
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccessiblePagesResponse
// @Router /api/v1/pages/mine [get]
func (h *PageAccessHandler) MyPages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	pages, err := h.access.AccessiblePages(c.Request.Context(), user)
	if err != nil {
		RespondWithMappedError(c, err, pageAccessErrorCases, http.StatusInternalServerError, "failed to list accessible pages")
		return
	}

	ids := make([]string, 0, len(pages))
	for _, page := range pages {
		ids = append(ids, string(page))
	}

	c.JSON(http.StatusOK, AccessiblePagesResponse{UserID: user.ID, Pages: ids})
}

// CheckAccess godoc
// @Summary Check the caller's access to a page
// @Description Decides access for the authenticated user. An override wins over the catalog default.
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Param page path string true "Page ID"
// @Success 200 {object} EffectiveAccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/pages/{page}/access [get]
func (h *PageAccessHandler) CheckAccess(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	page, err := domain.ParsePage(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown page id"))
		return
	}

	allowed, err := h.access.EffectiveAccess(c.Request.Context(), user, page)
	if err != nil {
		RespondWithMappedError(c, err, pageAccessErrorCases, http.StatusInternalServerError, "failed to evaluate access")
		return
	}

	c.JSON(http.StatusOK, EffectiveAccessResponse{
		UserID:  user.ID,
		Page:    string(page),
		Allowed: allowed,
	})
}

// MyOverrides godoc
// @Summary List the caller's override records
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PageAccessListResponse
// @Router /api/v1/pages/overrides/mine [get]
func (h *PageAccessHandler) MyOverrides(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	records, err := h.access.MyOverrides(c.Request.Context(), user)
	if err != nil {
		RespondWithMappedError(c, err, pageAccessErrorCases, http.StatusInternalServerError, "failed to list overrides")
		return
	}

	c.JSON(http.StatusOK, newPageAccessListResponse(records))
}

// ListOverrides godoc
// @Summary List a user's override records
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} PageAccessListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/page-access [get]
func (h *PageAccessHandler) ListOverrides(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	records, err := h.access.ListOverrides(c.Request.Context(), admin, c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, pageAccessErrorCases, http.StatusInternalServerError, "failed to list overrides")
		return
	}

	c.JSON(http.StatusOK, newPageAccessListResponse(records))
}

// Grant godoc
// @Summary Grant page access to a user
// @Description Writes a force-allow override for the target user and page.
// @Tags Pages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body PageAccessWriteRequest true "Grant payload"
// @Success 200 {object} PageAccessPayload
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/page-access/grant [post]
func (h *PageAccessHandler) Grant(c *gin.Context) {
	h.writeOverride(c, true)
}

// Revoke godoc
// @Summary Revoke page access from a user
// @Description Writes a force-deny override for the target user and page.
// @Tags Pages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body PageAccessWriteRequest true "Revoke payload"
// @Success 200 {object} PageAccessPayload
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/page-access/revoke [post]
func (h *PageAccessHandler) Revoke(c *gin.Context) {
	h.writeOverride(c, false)
}

func (h *PageAccessHandler) writeOverride(c *gin.Context, granted bool) {
	admin, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req PageAccessWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	page, err := domain.ParsePage(req.Page)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown page id"))
		return
	}

	var record *domain.PageAccess
	if granted {
		record, err = h.access.Grant(c.Request.Context(), admin, c.Param("id"), page, req.Reason)
	} else {
		record, err = h.access.Revoke(c.Request.Context(), admin, c.Param("id"), page, req.Reason)
	}
	if err != nil {
		RespondWithMappedError(c, err, pageAccessErrorCases, http.StatusInternalServerError, "failed to write override")
		return
	}

	c.JSON(http.StatusOK, newPageAccessPayload(*record))
}

// GrantBatch godoc
// @Summary Grant multiple pages to a user
// @Description Grants each page independently; one failed item does not roll back the others.
// @Tags Pages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body PageAccessBatchRequest true "Batch grant payload"
// @Success 200 {object} PageAccessBatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/page-access/grant-batch [post]
func (h *PageAccessHandler) GrantBatch(c *gin.Context) {
	h.writeOverrideBatch(c, true)
}

// RevokeBatch godoc
// @Summary Revoke multiple pages from a user
// @Tags Pages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body PageAccessBatchRequest true "Batch revoke payload"
// @Success 200 {object} PageAccessBatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{id}/page-access/revoke-batch [post]
func (h *PageAccessHandler) RevokeBatch(c *gin.Context) {
	h.writeOverrideBatch(c, false)
}

func (h *PageAccessHandler) writeOverrideBatch(c *gin.Context, granted bool) {
	admin, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req PageAccessBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	pages := make([]domain.Page, 0, len(req.Pages))
	for _, raw := range req.Pages {
		page, err := domain.ParsePage(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown page id: "+raw))
			return
		}
		pages = append(pages, page)
	}

	var (
		results []usecase.PageAccessItemResult
		err     error
	)
	if granted {
		results, err = h.access.GrantMany(c.Request.Context(), admin, c.Param("id"), pages, req.Reason)
	} else {
		results, err = h.access.RevokeMany(c.Request.Context(), admin, c.Param("id"), pages, req.Reason)
	}
	if err != nil {
		RespondWithMappedError(c, err, pageAccessErrorCases, http.StatusInternalServerError, "failed to write overrides")
		return
	}

	items := make([]PageAccessBatchItem, 0, len(results))
	for _, result := range results {
		item := PageAccessBatchItem{Page: string(result.Page), Success: result.Err == nil}
		if result.Err != nil {
			item.Error = result.Err.Error()
		}
		if result.Record != nil {
			payload := newPageAccessPayload(*result.Record)
			item.Override = &payload
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, PageAccessBatchResponse{Results: items})
}

func newPageAccessListResponse(records []domain.PageAccess) PageAccessListResponse {
	payloads := make([]PageAccessPayload, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, newPageAccessPayload(record))
	}
	return PageAccessListResponse{Overrides: payloads, Total: len(payloads)}
}
