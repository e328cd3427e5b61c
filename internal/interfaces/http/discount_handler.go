package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/discount"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

// DiscountHandler expone "Apply Discount Now" y su historial.
type DiscountHandler struct {
	uc *discount.ApplyDiscountUseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *discount.ApplyDiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Apply godoc
// @Summary      Aplicar descuento
// @Description  Deshabilita el botón una hora y pide al backend aplicar el descuento del tipo
//               indicado ("hour", "item"). Si no hay ítems elegibles o el backend falla el
//               botón se vuelve a habilitar. Responde 409 mientras el cooldown está activo.
// @Tags         dashboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ApplyDiscountRequest  true  "Tipo de descuento"
// @Success      200   {object}  dto.ApplyDiscountResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ApplyDiscountResultDTO
// @Router       /api/dashboard/discount [post]
func (h *DiscountHandler) Apply(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}

	var req dto.ApplyDiscountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_BODY", Message: "cuerpo JSON inválido",
			})
		}
	}

	// con el cooldown vigente devuelve domain.ErrCooldownActive → 409
	res, err := h.uc.Apply(c.UserContext(), companyID, GetUserID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	if res.Outcome == entity.DiscountOutcomeFailed {
		return c.Status(fiber.StatusBadGateway).JSON(res)
	}
	return c.JSON(res)
}

// History godoc
// @Summary      Historial de descuentos aplicados
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. registros (default 20, max 100)"
// @Success      200  {array}   dto.DiscountApplicationDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/discount/history [get]
func (h *DiscountHandler) History(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}

	var req dto.LimitRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	req.DefaultLimit()

	list, err := h.uc.History(c.UserContext(), companyID, req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
