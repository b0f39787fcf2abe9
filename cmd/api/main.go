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
	"github.com/tu-usuario/propiedades-pro/internal/application/auth"
	appbilling "github.com/tu-usuario/propiedades-pro/internal/application/billing"
	"github.com/tu-usuario/propiedades-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/propiedades-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/propiedades-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/propiedades-pro/internal/interfaces/http"
	"github.com/tu-usuario/propiedades-pro/pkg/config"
	"github.com/tu-usuario/propiedades-pro/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	orgRepo := postgres.NewOrgRepository(pool)
	renterRepo := postgres.NewRenterRepository(pool)
	ownerRepo := postgres.NewOwnerRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	staffRepo := postgres.NewStaffRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	leaseRepo := postgres.NewLeaseRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	fxRepo := postgres.NewFxRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(
		userRepo, roleRepo, orgRepo,
		renterRepo, ownerRepo, vendorRepo, staffRepo,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	orgUC := usecase.NewOrgUseCase(orgRepo, cfg.FX.FallbackBaseCurrency)
	propertyUC := usecase.NewPropertyUseCase(propertyRepo, unitRepo)
	leaseUC := usecase.NewLeaseUseCase(leaseRepo, propertyRepo, unitRepo, renterRepo)
	maintenanceUC := usecase.NewMaintenanceUseCase(maintenanceRepo, propertyRepo)
	profileUC := usecase.NewProfileUseCase(renterRepo, ownerRepo, vendorRepo, staffRepo)

	invoiceUC := appbilling.NewInvoiceUseCase(
		txRunner, invoiceRepo, renterRepo, orgRepo, fxRepo,
		cfg.FX.FallbackBaseCurrency,
	)
	paymentUC := appbilling.NewPaymentUseCase(
		txRunner, paymentRepo, invoiceRepo, renterRepo,
		cfg.FX.FallbackBaseCurrency,
	)
	fxUC := appbilling.NewFxUseCase(txRunner, fxRepo, invoiceRepo, ledgerRepo)

	// PDF: representación gráfica de la factura de arriendo
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := appbilling.NewPDFUseCase(invoiceRepo, renterRepo, orgRepo, pdfGenerator)

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
		Title:    "Propiedades Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		OrgUC:         orgUC,
		PropertyUC:    propertyUC,
		LeaseUC:       leaseUC,
		MaintenanceUC: maintenanceUC,
		ProfileUC:     profileUC,
		InvoiceUC:     invoiceUC,
		PaymentUC:     paymentUC,
		FxUC:          fxUC,
		PDFUC:         pdfUC,
		AuthDeps: httpRouter.AuthDeps{
			JWTSecret:  cfg.JWT.Secret,
			CookieName: cfg.JWT.CookieName,
			UserRepo:   userRepo,
			RoleRepo:   roleRepo,
		},
		JWTCfg: cfg.JWT,
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
