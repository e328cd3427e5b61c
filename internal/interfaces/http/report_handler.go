package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/report"
)

// ReportHandler descarga del reporte PDF.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Download godoc
// @Summary      Reporte "Sales Report" en PDF
// @Description  Gráficos, lecturas, ítems con descuento y bloque de firma.
//               Se descarga como sales_report_YYYY-MM-DD.pdf.
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}

	pdfBytes, filename, err := h.uc.GenerateReport(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
