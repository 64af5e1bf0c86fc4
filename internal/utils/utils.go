package utils

import (
	"strconv"

	"cms-admin/internal/errors"

	"github.com/gin-gonic/gin"
)

// ParamID reads a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.BadRequest("Invalid "+name, err)
	}
	return id, nil
}
