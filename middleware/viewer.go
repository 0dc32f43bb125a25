package middleware

import (
	"errors"
	"net/http"
	"strings"

	"visioncare/models"
	userService "visioncare/services/user"
	"visioncare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ViewerContextKey is where the resolved viewer lives in the gin context.
const ViewerContextKey = "viewer"

// AuthMiddleware validates the bearer token and attaches the session viewer
// to the request. The viewer normally comes straight from the session cache;
// a cache miss (Redis restart, expired entry) rebuilds it from the database
// and re-caches it, so a valid token never fails on a cold cache.
func AuthMiddleware(sessions *redis.Client, users userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or malformed Authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, err := utils.ExtractIDFromToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			c.Abort()
			return
		}

		tokenHash := utils.HashToken(token)
		viewer, err := utils.GetViewerSession(sessions, tokenHash)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				utils.GetLogger().Warn("viewer session lookup failed",
					zap.String("userID", userID), zap.Error(err))
			}
			viewer, err = rebuildViewer(c, sessions, users, userID, tokenHash)
			if err != nil {
				utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Session could not be resolved")
				c.Abort()
				return
			}
		}

		c.Set(ViewerContextKey, *viewer)
		c.Next()
	}
}

func rebuildViewer(c *gin.Context, sessions *redis.Client, users userService.UserService, userID, tokenHash string) (*models.Viewer, error) {
	u, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}

	viewer := users.ResolveViewer(c.Request.Context(), u)
	if err := utils.SaveViewerSession(sessions, tokenHash, viewer); err != nil {
		utils.GetLogger().Warn("failed to re-cache viewer session",
			zap.String("userID", userID), zap.Error(err))
	}
	return &viewer, nil
}

// ViewerFromContext retrieves the viewer attached by AuthMiddleware.
func ViewerFromContext(c *gin.Context) (models.Viewer, bool) {
	v, ok := c.Get(ViewerContextKey)
	if !ok {
		return models.Viewer{}, false
	}
	viewer, ok := v.(models.Viewer)
	return viewer, ok
}

// AdminOnly rejects requests whose viewer is not an administrator. Must run
// after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := ViewerFromContext(c)
		if !ok || viewer.Role != models.RoleAdmin {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "Administrator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
