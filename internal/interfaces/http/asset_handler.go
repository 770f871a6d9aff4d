package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KingHansX/EContable-sub001/internal/application/assets"
	"github.com/KingHansX/EContable-sub001/internal/application/dto"
)

// AssetHandler maneja activos fijos y sus corridas de depreciación (protegido).
type AssetHandler struct {
	uc *assets.AssetsUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *assets.AssetsUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar activo fijo
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "Datos del activo"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.AcquisitionDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y acquisition_date son requeridos"})
	}
	out, err := h.uc.RegisterAsset(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.GetAsset(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar activos
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AssetResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListAssets(companyID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dispose godoc
// @Summary      Dar de baja un activo (terminal, detiene la depreciación)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/disposal [post]
func (h *AssetHandler) Dispose(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.Dispose(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RunDepreciation godoc
// @Summary      Correr la depreciación de un período (idempotente)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchRunRequest  true  "period, force, entity_ids?"
// @Success      200   {object}  dto.BatchRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assets/depreciation-runs [post]
func (h *AssetHandler) RunDepreciation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.BatchRunRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period es requerido"})
	}
	out, err := h.uc.RunDepreciation(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSchedule godoc
// @Summary      Historial de depreciación de un activo (incluye supersedidas)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {array}  dto.DepreciationEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/schedule [get]
func (h *AssetHandler) GetSchedule(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.ListDepreciation(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetEntry godoc
// @Summary      Cuota de depreciación vigente de un período
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del activo"
// @Param        period  path  string  true  "Período YYYY-MM"
// @Success      200     {object}  dto.DepreciationEntryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/schedule/{period} [get]
func (h *AssetHandler) GetEntry(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.GetDepreciationEntry(companyID, c.Params("id"), c.Params("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
