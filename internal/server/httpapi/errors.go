package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

func statusFor(kind auth.Kind) int {
	switch kind {
	case auth.KindBadRequest:
		return http.StatusBadRequest
	case auth.KindUnauthorized:
		return http.StatusUnauthorized
	case auth.KindConflict:
		return http.StatusConflict
	case auth.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the status for err. The body carries
// only the generic kind text; the cause goes to the log.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorExportDisabled) {
		c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{"error": "export disabled"})
		return
	}

	kind := auth.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "route", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": kind.String()})
}
