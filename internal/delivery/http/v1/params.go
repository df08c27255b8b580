package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultOffset = 0
	defaultLimit  = 20
)

// parseIDParam reads a positive int64 path parameter,
// aborting the request with a 400 on garbage input.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		abort(c, newBadRequestError("invalid "+name))
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (limit, offset int, ok bool) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", strconv.Itoa(defaultOffset)))
	if err != nil || offset < 0 {
		abort(c, newBadRequestError("invalid offset"))
		return 0, 0, false
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		abort(c, newBadRequestError("invalid limit"))
		return 0, 0, false
	}
	return limit, offset, true
}
