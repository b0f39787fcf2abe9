package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/propiedades-pro/internal/application/auth"
	"github.com/tu-usuario/propiedades-pro/internal/application/billing"
	"github.com/tu-usuario/propiedades-pro/internal/application/usecase"
	"github.com/tu-usuario/propiedades-pro/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	OrgUC         *usecase.OrgUseCase
	PropertyUC    *usecase.PropertyUseCase
	LeaseUC       *usecase.LeaseUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	ProfileUC     *usecase.ProfileUseCase
	InvoiceUC     *billing.InvoiceUseCase
	PaymentUC     *billing.PaymentUseCase
	FxUC          *billing.FxUseCase
	PDFUC         *billing.PDFUseCase
	AuthDeps      AuthDeps
	JWTCfg        config.JWTConfig
}

// Router registra las rutas de la API. El AuthResolver corre para todo /api;
// cada grupo lleva su guard de permisos (listas OR por recurso).
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api", MetricsMiddleware(), AuthResolver(deps.AuthDeps))

	// Auth (login/registro públicos; el registro exige admin cuando ya hay usuarios)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTCfg)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", RequireAuth(), authHandler.Me)

	// Administración de cuentas y roles
	userHandler := NewUserHandler(deps.AuthUC)
	users := authGroup.Group("/users", RequirePermissions(deps.AuthDeps, "admin", "users"))
	users.Get("/", userHandler.ListUsers)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)
	authGroup.Get("/roles", RequirePermissions(deps.AuthDeps, "admin", "users", "system"), userHandler.ListRoles)
	authGroup.Put("/roles/:id", RequirePermissions(deps.AuthDeps, "admin", "system"), userHandler.UpdateRole)

	// Organizaciones (solo admin/system)
	orgs := api.Group("/orgs", RequirePermissions(deps.AuthDeps, "admin", "system"))
	orgHandler := NewOrgHandler(deps.OrgUC)
	orgs.Get("/", orgHandler.List)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Get("/:id/settings", orgHandler.GetSettings)
	orgs.Put("/:id/settings", orgHandler.UpdateSettings)

	// Portafolio: inmuebles y unidades
	properties := api.Group("/properties", RequirePermissions(deps.AuthDeps, "properties", "portfolio"))
	propertyHandler := NewPropertyHandler(deps.PropertyUC)
	properties.Post("/units", propertyHandler.CreateUnit)
	properties.Get("/units", propertyHandler.ListUnits)
	properties.Get("/units/:id", propertyHandler.GetUnit)
	properties.Put("/units/:id", propertyHandler.UpdateUnit)
	properties.Post("/", propertyHandler.Create)
	properties.Get("/", propertyHandler.List)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Put("/:id", propertyHandler.Update)
	properties.Delete("/:id", propertyHandler.Delete)

	// Contratos de arriendo
	leases := api.Group("/leases", RequirePermissions(deps.AuthDeps, "leasing", "properties"))
	leaseHandler := NewLeaseHandler(deps.LeaseUC)
	leases.Post("/", leaseHandler.Create)
	leases.Get("/", leaseHandler.List)
	leases.Get("/:id", leaseHandler.GetByID)
	leases.Put("/:id", leaseHandler.Update)

	// Perfiles de negocio (solo listados; el alta va por el registro de cuentas)
	profileHandler := NewProfileHandler(deps.ProfileUC)
	api.Get("/tenants", RequirePermissions(deps.AuthDeps, "leasing", "properties", "billing"), profileHandler.ListRenters)
	api.Get("/owners", RequirePermissions(deps.AuthDeps, "properties", "portfolio"), profileHandler.ListOwners)
	api.Get("/vendors", RequirePermissions(deps.AuthDeps, "maintenance", "operations"), profileHandler.ListVendors)
	api.Get("/staff", RequirePermissions(deps.AuthDeps, "admin", "users"), profileHandler.ListStaff)

	// Mantenimiento
	maintenance := api.Group("/maintenance", RequirePermissions(deps.AuthDeps, "maintenance", "operations"))
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	maintenance.Post("/", maintenanceHandler.Create)
	maintenance.Get("/", maintenanceHandler.List)
	maintenance.Get("/:id", maintenanceHandler.GetByID)
	maintenance.Put("/:id", maintenanceHandler.Update)

	// Facturación multi-moneda
	billingGroup := api.Group("/billing", RequirePermissions(deps.AuthDeps, "billing", "payments", "finance", "accounting"))

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	fxHandler := NewFxHandler(deps.FxUC)
	invoices := billingGroup.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Post("/:id/post", invoiceHandler.Post)
	invoices.Post("/:id/void", invoiceHandler.Void)
	invoices.Post("/:id/revalue", fxHandler.Revalue)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := billingGroup.Group("/payments")
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Post("/:id/void", paymentHandler.Void)

	fx := billingGroup.Group("/fx")
	fx.Post("/rates", fxHandler.CreateRate)
	fx.Get("/rates", fxHandler.ListRates)
	fx.Post("/snapshots", fxHandler.GenerateSnapshots)
	fx.Get("/snapshots", fxHandler.ListSnapshots)

	billingGroup.Get("/ledger", fxHandler.ListLedger)
}
