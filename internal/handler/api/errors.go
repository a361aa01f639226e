package api

import (
	"errors"

	"availability-engine/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var (
	errPartyMissing  = errors.New("party missing from context")
	errTooManyOwners = errors.New("too many owner ids")
)

func abortWithUsecaseError(c *gin.Context, err error, msg string) {
	httperr.AbortWithKind(c, err, msg)
}
