package rbac

import (
	"worknest/internal/shared/apperror"
	"worknest/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the caller's role, which the auth middleware
// put on the gin context.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWith(c, err)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden)
			return
		}

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
