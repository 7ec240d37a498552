package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymfitness/membership/internal/common"
)

const (
	msgEmailInUse    = "Error: Email is already in use!"
	msgCancelledAcct = "Error: Account has been Cancelled"
	msgUserNotFound  = "Error: User not found"
	msgBadCreds      = "Error: Bad credentials"
	msgUnauthorized  = "Error: Unauthorized"
	msgInternal      = "Error: Internal server error"
	msgTooMany       = "Error: Too many requests"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, messageResponse{Message: msg})
}

// fail maps a service error onto a status code and message.
func (s *HTTPServer) fail(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	log := s.requestLogger(c)

	switch {
	case errors.Is(err, common.ErrEmailAlreadyInUse):
		s.metrics.authOutcome(op, outcomeConflict)
		respondMessage(c, http.StatusConflict, msgEmailInUse)
	case errors.Is(err, common.ErrAccountCancelled):
		s.metrics.authOutcome(op, outcomeCancelled)
		respondMessage(c, http.StatusForbidden, msgCancelledAcct)
	case errors.Is(err, common.ErrorNotFound):
		s.metrics.authOutcome(op, outcomeNotFound)
		respondMessage(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		s.metrics.authOutcome(op, outcomeUnauthorized)
		respondMessage(c, http.StatusUnauthorized, msgBadCreds)
	case errors.Is(err, common.ErrorMisconfiguration):
		s.metrics.authOutcome(op, outcomeError)
		log.Error(ctx, "server misconfigured", "op", op, "error", err)
		respondMessage(c, http.StatusInternalServerError, msgInternal)
	default:
		s.metrics.authOutcome(op, outcomeError)
		log.Error(ctx, "request failed", "op", op, "error", err)
		respondMessage(c, http.StatusInternalServerError, msgInternal)
	}
}
