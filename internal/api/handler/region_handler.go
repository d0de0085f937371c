package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// Regions handles GET /v1/regions.
//
// @Summary      List districts and provinces
// @Tags         regions
// @Produce      json
// @Success      200  {object}  regionsResponse
// @Router       /v1/regions [get]
func Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, regionsResponse{
		Districts: domain.Districts,
		Provinces: domain.Provinces,
	})
}
