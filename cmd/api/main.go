package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/KingHansX/EContable-sub001/internal/application/analytics"
	"github.com/KingHansX/EContable-sub001/internal/application/assets"
	"github.com/KingHansX/EContable-sub001/internal/application/auth"
	"github.com/KingHansX/EContable-sub001/internal/application/company"
	appkardex "github.com/KingHansX/EContable-sub001/internal/application/kardex"
	"github.com/KingHansX/EContable-sub001/internal/application/payroll"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	infrapdf "github.com/KingHansX/EContable-sub001/internal/infrastructure/pdf"
	"github.com/KingHansX/EContable-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/KingHansX/EContable-sub001/internal/interfaces/http"
	"github.com/KingHansX/EContable-sub001/pkg/config"
	"github.com/KingHansX/EContable-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	// Repositorios de lectura (sobre el pool); las mutaciones van por TxRunner.
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewLotMovementRepository(pool)
	snapshotRepo := postgres.NewLotSnapshotRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	depRepo := postgres.NewDepreciationRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	payrollRepo := postgres.NewPayrollRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Un solo juego de candados por proceso: serializa operaciones de la misma
	// entidad antes de llegar a la DB.
	locks := ledger.NewEntityLocks()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := company.NewCompanyUseCase(companyRepo)
	kardexUC := appkardex.NewKardexUseCase(txRunner, productRepo, lotRepo, movementRepo, locks, cfg.Inventory.ExpiryWindowDays)
	closeUC := appkardex.NewCloseMonthUseCase(txRunner, lotRepo, snapshotRepo, locks, log)
	assetsUC := assets.NewAssetsUseCase(txRunner, assetRepo, depRepo, locks, log)
	payrollUC := payroll.NewPayrollUseCase(txRunner, employeeRepo, payrollRepo, locks, cfg.Payroll.ContributionRate, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Inventory.ExpiryWindowDays)
	kardexPDFUC := appkardex.NewPDFUseCase(productRepo, lotRepo, movementRepo, companyRepo, pdfGenerator)
	payrollPDFUC := payroll.NewPDFUseCase(payrollRepo, employeeRepo, companyRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EContable API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		KardexUC:    kardexUC,
		CloseUC:     closeUC,
		KardexPDF:   kardexPDFUC,
		AssetsUC:    assetsUC,
		PayrollUC:   payrollUC,
		PayrollPDF:  payrollPDFUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
