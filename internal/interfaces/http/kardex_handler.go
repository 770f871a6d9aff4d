package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/application/kardex"
)

// KardexHandler maneja las operaciones del kardex por lotes (protegido).
type KardexHandler struct {
	uc      *kardex.KardexUseCase
	closeUC *kardex.CloseMonthUseCase
	pdfUC   *kardex.PDFUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *kardex.KardexUseCase, closeUC *kardex.CloseMonthUseCase, pdfUC *kardex.PDFUseCase) *KardexHandler {
	return &KardexHandler{uc: uc, closeUC: closeUC, pdfUC: pdfUC}
}

// ReceiveLot godoc
// @Summary      Recibir stock en un lote (nuevo o existente)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveLotRequest  true  "product_id, lot_number, expiration_date, quantity"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kardex/lots [post]
func (h *KardexHandler) ReceiveLot(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.ReceiveLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.LotNumber == "" || in.ExpirationDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, lot_number y expiration_date son requeridos"})
	}
	out, err := h.uc.ReceiveLot(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Consume godoc
// @Summary      Consumir stock de un producto (FEFO, todo o nada)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeStockRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.ConsumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kardex/consumptions [post]
func (h *KardexHandler) Consume(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.ConsumeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.ConsumeStock(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// WriteOff godoc
// @Summary      Dar de baja el remanente de un lote (vencidos, daños)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WriteOffRequest  true  "lot_id"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kardex/write-offs [post]
func (h *KardexHandler) WriteOff(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.WriteOffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lot_id es requerido"})
	}
	out, err := h.uc.WriteOff(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProductKardex godoc
// @Summary      Kardex de un producto: lotes con estado de vencimiento derivado
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        as_of  query  string  false  "Fecha de corte YYYY-MM-DD (default: hoy)"
// @Success      200    {object}  dto.ProductKardexResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/kardex/products/{id} [get]
func (h *KardexHandler) GetProductKardex(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Params("id")
	var asOf *time.Time
	if s := c.Query("as_of"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe tener formato YYYY-MM-DD"})
		}
		asOf = &t
	}
	out, err := h.uc.GetProductKardex(companyID, productID, asOf)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLots godoc
// @Summary      Listar lotes de la empresa
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/kardex/lots [get]
func (h *KardexHandler) ListLots(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListLots(companyID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Ledger de movimientos de un producto
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Desde YYYY-MM-DD"
// @Param        to    query  string  false  "Hasta YYYY-MM-DD"
// @Success      200   {array}  dto.LotMovementResponse
// @Router       /api/kardex/products/{id}/movements [get]
func (h *KardexHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Params("id")
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
		to = &t
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListMovements(companyID, productID, from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadReport godoc
// @Summary      Descargar el reporte kardex de un producto en PDF
// @Tags         kardex
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/products/{id}/report.pdf [get]
func (h *KardexHandler) DownloadReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Params("id")
	pdfBytes, filename, err := h.pdfUC.DownloadKardexReport(c.Context(), companyID, productID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// CloseMonth godoc
// @Summary      Cerrar un período del kardex (snapshot por lote, idempotente)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchRunRequest  true  "period, force, entity_ids?"
// @Success      200   {object}  dto.BatchRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kardex/closings [post]
func (h *KardexHandler) CloseMonth(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.BatchRunRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period es requerido"})
	}
	out, err := h.closeUC.CloseMonth(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSnapshot godoc
// @Summary      Snapshot mensual de un lote
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del lote"
// @Param        period  path  string  true  "Período YYYY-MM"
// @Success      200     {object}  dto.LotSnapshotResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/kardex/lots/{id}/snapshots/{period} [get]
func (h *KardexHandler) GetSnapshot(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.closeUC.GetSnapshot(companyID, c.Params("id"), c.Params("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSnapshots godoc
// @Summary      Snapshots de un período
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  true  "Período YYYY-MM"
// @Success      200     {array}  dto.LotSnapshotResponse
// @Router       /api/kardex/snapshots [get]
func (h *KardexHandler) ListSnapshots(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	period := c.Query("period")
	if period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period es requerido"})
	}
	out, err := h.closeUC.ListSnapshots(companyID, period)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
