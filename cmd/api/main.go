package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/silang-hris/payroll-backend-go/internal/config"
	"github.com/silang-hris/payroll-backend-go/internal/fixtures"
	appHTTP "github.com/silang-hris/payroll-backend-go/internal/handler/http"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/silang-hris/payroll-backend-go/internal/repository/postgresql"
	holidayService "github.com/silang-hris/payroll-backend-go/internal/service/holiday"
	payrollService "github.com/silang-hris/payroll-backend-go/internal/service/payroll"
	scheduleService "github.com/silang-hris/payroll-backend-go/internal/service/schedule"
	timesheetService "github.com/silang-hris/payroll-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load payroll timezone:", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	dayRecordRepo := postgresql.NewDayRecordRepository(db)
	shiftTemplateRepo := postgresql.NewShiftTemplateRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveGrantRepo := postgresql.NewLeaveGrantRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	resolver := scheduleService.NewResolver(shiftTemplateRepo)
	shiftSvc := scheduleService.NewService(shiftTemplateRepo)
	holidaySvc := holidayService.NewService(holidayRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		dayRecordRepo,
		employeeRepo,
		holidayRepo,
		leaveGrantRepo,
		resolver,
		loc,
	)
	calculator := payrollService.NewCalculator(fixtures.DefaultPolicy())
	runSvc := payrollService.NewRunService(
		txManager,
		payrollRunRepo,
		payslipRepo,
		dayRecordRepo,
		employeeRepo,
		holidayRepo,
		leaveGrantRepo,
		resolver,
		calculator,
		loc,
	)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	payrollHandler := appHTTP.NewPayrollHandler(runSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(shiftSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	scheduler := cron.NewScheduler(loc)
	cron.NewTimesheetJobs(dayRecordRepo, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		timesheetHandler,
		payrollHandler,
		scheduleHandler,
		holidayHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
