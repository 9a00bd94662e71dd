package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
)

func paginationFromQuery(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}
