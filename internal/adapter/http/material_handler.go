package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"librarium-backend/internal/usecase/catalog"
)

type MaterialHandler struct{ uc *catalog.Usecase }

func NewMaterialHandler(uc *catalog.Usecase) *MaterialHandler { return &MaterialHandler{uc: uc} }

func (h *MaterialHandler) ListMaterials(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaterialHandler) GetMaterial(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("material_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid material_id"})
	}
	m, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
