package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/KingHansX/EContable-sub001/internal/application/analytics"
	"github.com/KingHansX/EContable-sub001/internal/application/assets"
	"github.com/KingHansX/EContable-sub001/internal/application/auth"
	"github.com/KingHansX/EContable-sub001/internal/application/company"
	"github.com/KingHansX/EContable-sub001/internal/application/kardex"
	"github.com/KingHansX/EContable-sub001/internal/application/payroll"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *company.CompanyUseCase
	KardexUC    *kardex.KardexUseCase
	CloseUC     *kardex.CloseMonthUseCase
	KardexPDF   *kardex.PDFUseCase
	AssetsUC    *assets.AssetsUseCase
	PayrollUC   *payroll.PayrollUseCase
	PayrollPDF  *payroll.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: el registro de usuarios necesita una empresa previa)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Los cierres de período y la generación de nómina mueven registros
	// contables: solo admin y contador.
	accounting := RequireRole(entity.RoleAdmin, entity.RoleContador)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.KardexUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Kardex por lotes (protegido)
	kardexGroup := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC, deps.CloseUC, deps.KardexPDF)
	kardexGroup.Post("/lots", kardexHandler.ReceiveLot)
	kardexGroup.Get("/lots", kardexHandler.ListLots)
	kardexGroup.Post("/consumptions", kardexHandler.Consume)
	kardexGroup.Post("/write-offs", kardexHandler.WriteOff)
	kardexGroup.Get("/products/:id", kardexHandler.GetProductKardex)
	kardexGroup.Get("/products/:id/movements", kardexHandler.ListMovements)
	kardexGroup.Get("/products/:id/report.pdf", kardexHandler.DownloadReport)
	kardexGroup.Post("/closings", accounting, kardexHandler.CloseMonth)
	kardexGroup.Get("/lots/:id/snapshots/:period", kardexHandler.GetSnapshot)
	kardexGroup.Get("/snapshots", kardexHandler.ListSnapshots)

	// Activos fijos (protegido)
	assetsGroup := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetsUC)
	assetsGroup.Post("/", assetHandler.Create)
	assetsGroup.Get("/", assetHandler.List)
	assetsGroup.Post("/depreciation-runs", accounting, assetHandler.RunDepreciation)
	assetsGroup.Get("/:id", assetHandler.GetByID)
	assetsGroup.Post("/:id/disposal", accounting, assetHandler.Dispose)
	assetsGroup.Get("/:id/schedule", assetHandler.GetSchedule)
	assetsGroup.Get("/:id/schedule/:period", assetHandler.GetEntry)

	// Empleados y nómina (protegido)
	payrollHandler := NewPayrollHandler(deps.PayrollUC, deps.PayrollPDF)
	employees := protected.Group("/employees")
	employees.Post("/", payrollHandler.CreateEmployee)
	employees.Get("/", payrollHandler.ListEmployees)
	employees.Get("/:id", payrollHandler.GetEmployee)
	employees.Post("/:id/deactivation", accounting, payrollHandler.DeactivateEmployee)

	payrollGroup := protected.Group("/payroll")
	payrollGroup.Post("/runs", accounting, payrollHandler.GeneratePayroll)
	payrollGroup.Get("/runs", payrollHandler.ListPayrollRuns)
	payrollGroup.Get("/runs/:id/slip.pdf", payrollHandler.DownloadSlip)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
