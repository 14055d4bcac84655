package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dexter-morales/hrms-system-go/internal/config"
	appHTTP "github.com/dexter-morales/hrms-system-go/internal/handler/http"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/clock"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/cron"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/jwt"
	"github.com/dexter-morales/hrms-system-go/internal/repository/postgresql"
	attendanceService "github.com/dexter-morales/hrms-system-go/internal/service/attendance"
	employeeService "github.com/dexter-morales/hrms-system-go/internal/service/employee"
	leaveService "github.com/dexter-morales/hrms-system-go/internal/service/leave"
	loanService "github.com/dexter-morales/hrms-system-go/internal/service/loan"
	masterService "github.com/dexter-morales/hrms-system-go/internal/service/master"
	overtimeService "github.com/dexter-morales/hrms-system-go/internal/service/overtime"
	payrollService "github.com/dexter-morales/hrms-system-go/internal/service/payroll"
	scheduleService "github.com/dexter-morales/hrms-system-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hrms-system"),
		slog.String("env", cfg.App.Env),
	)
	clk := clock.System()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	attendanceSvc := attendanceService.NewAttendanceService(clk, logger, cfg.Payroll.GracePeriodMinutes, attendanceRepo, scheduleRepo)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo)
	loanSvc := loanService.NewLoanService(loanRepo)
	masterSvc := masterService.NewMasterService(holidayRepo, siteRepo)
	payrollSvc := payrollService.NewPayrollService(payrollService.ServiceDeps{
		DB:           db,
		Clock:        clk,
		Logger:       logger,
		GraceMinutes: cfg.Payroll.GracePeriodMinutes,

		PayrollRepo:    payrollRepo,
		EmployeeRepo:   employeeRepo,
		ScheduleRepo:   scheduleRepo,
		AttendanceRepo: attendanceRepo,
		OvertimeRepo:   overtimeRepo,
		LeaveRepo:      leaveRepo,
		HolidayRepo:    holidayRepo,
		SiteRepo:       siteRepo,
		LoanRepo:       loanRepo,
		Payslips:       payrollService.NewRefPayslipIssuer(),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(clk, attendanceRepo, scheduleRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Loan:       appHTTP.NewLoanHandler(loanSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
