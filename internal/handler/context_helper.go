package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/middleware"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
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

func actorFromClaims(claims *models.JWTClaims) service.Actor {
	return service.Actor{ID: claims.UserID, Role: claims.Role}
}
