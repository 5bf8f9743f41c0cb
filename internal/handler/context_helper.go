package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lit-planner/scheduler-api/internal/middleware"
	"github.com/lit-planner/scheduler-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func identityFromContext(c *gin.Context) models.Identity {
	return models.IdentityFromClaims(claimsFromContext(c))
}
