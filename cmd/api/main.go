package main

import (
	"fmt"
	"net/http"

	"github.com/kazipay/payroll-backend-go/internal/config"
	appHTTP "github.com/kazipay/payroll-backend-go/internal/handler/http"
	"github.com/kazipay/payroll-backend-go/internal/pkg/database"
	"github.com/kazipay/payroll-backend-go/internal/pkg/jwt"
	"github.com/kazipay/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/kazipay/payroll-backend-go/internal/service/payroll"
	statutoryService "github.com/kazipay/payroll-backend-go/internal/service/statutory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	statutoryRepo := postgresql.NewStatutoryRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	ratesService := statutoryService.NewRatesService(statutoryRepo)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo, ratesService)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	statutoryHandler := appHTTP.NewStatutoryHandler(ratesService)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		statutoryHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
