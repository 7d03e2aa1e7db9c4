package middleware

import (
	"net/http"
	"runtime/debug"

	"topreparateurs/pkg"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

var errInternal = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "Internal server error", http.StatusInternalServerError)

// Recovery turns a panic into a 500 and logs it with the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(c.Request.Context(), "[http][recovery] panic recovered",
					"error", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(errInternal.HTTPStatus, errInternal.ToHTTPError())
			}
		}()

		c.Next()
	}
}
