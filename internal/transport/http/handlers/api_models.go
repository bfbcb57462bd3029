package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peoplehub/user-access-service/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// AuthLoginRequest defines the payload for the login endpoint.
type AuthLoginRequest struct {
	Email        string `json:"email" binding:"required,email"`
	EnterpriseID string `json:"enterprise_id" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

// AuthLoginResponse describes the response returned for a successful login.
type AuthLoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserPayload `json:"user"`
}

// UserPayload describes a user returned by the API.
type UserPayload struct {
	ID           string    `json:"id"`
	EnterpriseID string    `json:"enterprise_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	ManagerID    *string   `json:"manager_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCreateRequest defines the payload for provisioning a user.
type UserCreateRequest struct {
	EnterpriseID string  `json:"enterprise_id" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Password     string  `json:"password" binding:"required"`
	Role         string  `json:"role" binding:"required"`
	ManagerID    *string `json:"manager_id,omitempty"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Users []UserPayload `json:"users"`
	Total int           `json:"total"`
}

// AssignManagerRequest defines the payload for assigning a manager.
type AssignManagerRequest struct {
	ManagerID string `json:"manager_id" binding:"required"`
}

// PagePayload describes a catalog page and its default role set.
type PagePayload struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	DefaultRoles []string `json:"default_roles"`
}

// PageCatalogResponse wraps the full page catalog.
type PageCatalogResponse struct {
	Pages []PagePayload `json:"pages"`
}

// AccessiblePagesResponse lists the pages a user can currently reach.
type AccessiblePagesResponse struct {
	UserID string   `json:"user_id"`
	Pages  []string `json:"pages"`
}

// EffectiveAccessResponse conveys a single page access decision.
type EffectiveAccessResponse struct {
	UserID  string `json:"user_id"`
	Page    string `json:"page"`
	Allowed bool   `json:"allowed"`
}

// PageAccessPayload describes an override record.
type PageAccessPayload struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Page       string    `json:"page"`
	Granted    bool      `json:"granted"`
	GrantedBy  string    `json:"granted_by"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// PageAccessListResponse wraps override records for a user.
type PageAccessListResponse struct {
	Overrides []PageAccessPayload `json:"overrides"`
	Total     int                 `json:"total"`
}

// PageAccessWriteRequest defines the payload for a single grant or revoke.
type PageAccessWriteRequest struct {
	Page   string `json:"page" binding:"required"`
	Reason string `json:"reason"`
}

// PageAccessBatchRequest defines the payload for batch grant or revoke.
type PageAccessBatchRequest struct {
	Pages  []string `json:"pages" binding:"required,min=1"`
	Reason string   `json:"reason"`
}

// PageAccessBatchItem carries the per-page outcome of a batch operation.
type PageAccessBatchItem struct {
	Page     string             `json:"page"`
	Success  bool               `json:"success"`
	Error    string             `json:"error,omitempty"`
	Override *PageAccessPayload `json:"override,omitempty"`
}

// PageAccessBatchResponse wraps batch operation results.
type PageAccessBatchResponse struct {
	Results []PageAccessBatchItem `json:"results"`
}

// EnterpriseCreateRequest defines the payload for creating an enterprise.
type EnterpriseCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// EnterprisePayload describes an enterprise.
type EnterprisePayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// EnterpriseListResponse wraps a list of enterprises.
type EnterpriseListResponse struct {
	Enterprises []EnterprisePayload `json:"enterprises"`
	Total       int                 `json:"total"`
}

// newUserPayload converts a domain user to an API payload.
func newUserPayload(user domain.User) UserPayload {
	return UserPayload{
		ID:           user.ID,
		EnterpriseID: user.EnterpriseID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		IsActive:     user.IsActive,
		ManagerID:    user.ManagerID,
		CreatedAt:    user.CreatedAt,
	}
}

func newUserListResponse(users []domain.User) UserListResponse {
	payloads := make([]UserPayload, 0, len(users))
	for _, user := range users {
		payloads = append(payloads, newUserPayload(user))
	}
	return UserListResponse{Users: payloads, Total: len(payloads)}
}

// newPageAccessPayload converts an override record to an API payload.
func newPageAccessPayload(record domain.PageAccess) PageAccessPayload {
	return PageAccessPayload{
		ID:         record.ID,
		UserID:     record.UserID,
		Page:       string(record.Page),
		Granted:    record.Granted,
		GrantedBy:  record.GrantedBy,
		Reason:     record.Reason,
		CreatedAt:  record.CreatedAt,
		ModifiedAt: record.ModifiedAt,
	}
}

// newEnterprisePayload converts a domain enterprise to an API payload.
func newEnterprisePayload(enterprise domain.Enterprise) EnterprisePayload {
	return EnterprisePayload{
		ID:        enterprise.ID,
		Name:      enterprise.Name,
		IsActive:  enterprise.IsActive,
		CreatedAt: enterprise.CreatedAt,
	}
}
