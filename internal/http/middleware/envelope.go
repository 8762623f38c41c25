package middleware

import (
	"net/http"

	"mockcenter/internal/domain"
	"mockcenter/internal/metrics"

	"github.com/gin-gonic/gin"
)

// WriteResult writes r as the single response of the request. Envelopes are
// always sent with HTTP 200; the outcome lives in r.Code.
func WriteResult(c *gin.Context, r domain.Result) {
	metrics.RecordResult(r.Code)
	c.JSON(http.StatusOK, r)
}

// AbortWithResult writes r and stops the handler chain.
func AbortWithResult(c *gin.Context, r domain.Result) {
	WriteResult(c, r)
	c.Abort()
}
