package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
)

type ErrorBody struct {
	Detail string      `json:"detail"`
	Errors interface{} `json:"errors,omitempty"`
}

func OK(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, v)
}

func Created(c *gin.Context, v interface{}) {
	c.JSON(http.StatusCreated, v)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func NotFound(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorBody{Detail: detail})
}

// Invalid reports a malformed request body or parameter.
func Invalid(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorBody{
		Detail: "request validation failed",
		Errors: err.Error(),
	})
}

// Error maps an application error to its HTTP status. Unexpected errors are
// logged and hidden from the client.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	switch {
	case apperror.IsValidation(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Detail: apperror.ValidationMessage(err)})
	case errors.Is(err, apperror.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorBody{Detail: err.Error()})
	default:
		log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Detail: "internal server error"})
	}
}
