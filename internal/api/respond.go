package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venturelens/internal/errors"
)

// respondError maps application error codes onto HTTP statuses. An
// unavailable stage is a 503; a failed stage names itself in the body.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError

	switch code {
	case errors.CodeStageUnavailable:
		status = http.StatusServiceUnavailable
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}
