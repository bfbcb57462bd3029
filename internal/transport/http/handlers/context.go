package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/transport/http/middleware"
)

// currentUser pulls the authenticated user record loaded by the auth middleware.
func currentUser(c *gin.Context) (domain.User, bool) {
	return middleware.GetCurrentUser(c)
}
