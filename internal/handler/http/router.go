package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kazipay/payroll-backend-go/internal/domain/user"
	"github.com/kazipay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/kazipay/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, statutoryHandler StatutoryHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kazipay-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.With(middleware.RequirePermission(user.PermissionPayrollProcess)).
					Post("/process", payrollHandler.ProcessBatch)
				r.Post("/compute", payrollHandler.ComputePayroll)

				r.Route("/periods", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPeriods)
					r.Get("/stats", payrollHandler.PeriodStats)
					r.Get("/{periodID}", payrollHandler.GetPeriodDetail)

					// Destructive period maintenance
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
						r.Delete("/{periodID}", payrollHandler.DeletePeriod)
						r.Post("/delete", payrollHandler.DeletePeriods)
					})
				})

				r.With(middleware.RequirePermission(user.PermissionPayrollManage)).
					Post("/records/deduplicate", payrollHandler.DeleteDuplicateRecords)
			})

			r.Route("/statutory/rates", func(r chi.Router) {
				r.Get("/", statutoryHandler.GetCurrentRates)
				r.Get("/versions", statutoryHandler.ListRatesVersions)
				r.Get("/versions/{version}", statutoryHandler.GetRatesByVersion)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/", statutoryHandler.CreateRates)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
