package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// idempotencyKeyHeader carries the client-chosen key that makes stock
// mutations replay-safe.
const idempotencyKeyHeader = "X-Idempotency-Key"

// uuidParam parses a UUID path parameter by name.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// idempotencyKey reads the idempotency key header, empty when absent.
func idempotencyKey(c *gin.Context) string {
	return c.GetHeader(idempotencyKeyHeader)
}
