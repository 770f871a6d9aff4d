package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/KingHansX/EContable-sub001/internal/application/analytics"
	"github.com/KingHansX/EContable-sub001/internal/application/dto"
)

// DashboardHandler maneja el resumen financiero del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los totales de activos, inventario y nómina de la empresa.
// GET /api/dashboard/summary?period=YYYY-MM
//
// Los totales son sumas puras sobre el estado actual de las entidades; el
// período solo acota la sección de nómina (default: mes en curso).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	summary, err := h.uc.GetSummary(c.Context(), companyID, c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(summary)
}
