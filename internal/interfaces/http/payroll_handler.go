package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/application/payroll"
)

// PayrollHandler maneja empleados y roles de pago (protegido).
type PayrollHandler struct {
	uc    *payroll.PayrollUseCase
	pdfUC *payroll.PDFUseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *payroll.PayrollUseCase, pdfUC *payroll.PDFUseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc, pdfUC: pdfUC}
}

// CreateEmployee godoc
// @Summary      Registrar empleado
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *PayrollHandler) CreateEmployee(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Identification == "" || in.HireDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, identification y hire_date son requeridos"})
	}
	out, err := h.uc.RegisterEmployee(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEmployee godoc
// @Summary      Obtener empleado por ID
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *PayrollHandler) GetEmployee(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.GetEmployee(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Success      200     {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *PayrollHandler) ListEmployees(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	onlyActive := c.QueryBool("active", false)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListEmployees(companyID, onlyActive, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeactivateEmployee godoc
// @Summary      Desactivar empleado (sale del alcance de la nómina)
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/deactivation [post]
func (h *PayrollHandler) DeactivateEmployee(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.SetEmployeeActive(companyID, c.Params("id"), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GeneratePayroll godoc
// @Summary      Generar la nómina de un período (un empleado o todos los activos)
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GeneratePayrollRequest  true  "period, employee_id?, overtime, bonuses, advances, force"
// @Success      200   {object}  dto.BatchRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payroll/runs [post]
func (h *PayrollHandler) GeneratePayroll(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.GeneratePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period es requerido"})
	}
	out, err := h.uc.GeneratePayroll(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPayrollRuns godoc
// @Summary      Roles de pago vigentes de un período
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  true  "Período YYYY-MM"
// @Success      200     {array}  dto.PayrollRunResponse
// @Router       /api/payroll/runs [get]
func (h *PayrollHandler) ListPayrollRuns(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	period := c.Query("period")
	if period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period es requerido"})
	}
	out, err := h.uc.ListPayrollRuns(companyID, period)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadSlip godoc
// @Summary      Descargar el rol de pagos de un empleado en PDF
// @Tags         payroll
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del rol de pagos"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/runs/{id}/slip.pdf [get]
func (h *PayrollHandler) DownloadSlip(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	pdfBytes, filename, err := h.pdfUC.DownloadSlip(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
