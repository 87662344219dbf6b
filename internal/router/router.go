package router

import (
	"time"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/middleware"
	"college/backend/internal/pkg/config"
	"college/backend/internal/pkg/repository/postgresql"
	"college/backend/internal/repository/postgres/analytics"
	"college/backend/internal/repository/postgres/attendance"
	"college/backend/internal/repository/postgres/chat"
	"college/backend/internal/repository/postgres/collegeinfo"
	"college/backend/internal/repository/postgres/department"
	"college/backend/internal/repository/postgres/notification"
	"college/backend/internal/repository/postgres/qrsession"
	"college/backend/internal/repository/postgres/subject"
	"college/backend/internal/repository/postgres/timetable"
	"college/backend/internal/repository/postgres/user"

	"github.com/redis/go-redis/v9"

	analytics_controller "college/backend/internal/controller/http/v1/analytics"
	attendance_controller "college/backend/internal/controller/http/v1/attendance"
	auth_controller "college/backend/internal/controller/http/v1/auth"
	chat_controller "college/backend/internal/controller/http/v1/chat"
	collegeinfo_controller "college/backend/internal/controller/http/v1/collegeinfo"
	department_controller "college/backend/internal/controller/http/v1/department"
	notification_controller "college/backend/internal/controller/http/v1/notification"
	qrsession_controller "college/backend/internal/controller/http/v1/qrsession"
	subject_controller "college/backend/internal/controller/http/v1/subject"
	timetable_controller "college/backend/internal/controller/http/v1/timetable"
	user_controller "college/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		cfg,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// generated exports and qr handouts
	r.Static("/statics", "./statics")

	policy := attendance.Policy{
		LateAfter: time.Duration(r.cfg.LateAfterMinutes) * time.Minute,
		Grace:     time.Duration(r.cfg.GraceMinutes) * time.Minute,
	}

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	departmentPostgres := department.NewRepository(r.postgresDB)
	subjectPostgres := subject.NewRepository(r.postgresDB)
	qrSessionPostgres := qrsession.NewRepository(r.postgresDB, r.redisDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, policy)
	analyticsPostgres := analytics.NewRepository(r.postgresDB)
	timetablePostgres := timetable.NewRepository(r.postgresDB)
	notificationPostgres := notification.NewRepository(r.postgresDB)
	chatPostgres := chat.NewRepository(r.postgresDB)
	collegeInfoPostgres := collegeinfo.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres, r.cfg.JWTKeyFile)
	userController := user_controller.NewController(userPostgres)
	departmentController := department_controller.NewController(departmentPostgres)
	subjectController := subject_controller.NewController(subjectPostgres)
	qrSessionController := qrsession_controller.NewController(qrSessionPostgres, r.cfg.BaseUrl)
	attendanceController := attendance_controller.NewController(attendancePostgres, qrSessionPostgres)
	analyticsController := analytics_controller.NewController(analyticsPostgres)
	timetableController := timetable_controller.NewController(timetablePostgres)
	notificationController := notification_controller.NewController(notificationPostgres)
	chatController := chat_controller.NewController(chatPostgres)
	collegeInfoController := collegeinfo_controller.NewController(collegeInfoPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Get("/api/v1/user/export_students", userController.ExportStudents, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/export_template", userController.ExportTemplate, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create_excel", userController.CreateByExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #department
	r.Get("/api/v1/department/list", departmentController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/department/:id", departmentController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/department/create", departmentController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/department/:id", departmentController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/department/:id", departmentController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #subject
	r.Get("/api/v1/subject/list", subjectController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/subject/:id", subjectController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/subject/create", subjectController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/subject/:id", subjectController.UpdateAll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/subject/:id", subjectController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/subject/:id", subjectController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #qr session
	r.Post("/api/v1/qr_session/create", qrSessionController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Get("/api/v1/qr_session/list", qrSessionController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Get("/api/v1/qr_session/pdf", qrSessionController.GetListPDF, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Get("/api/v1/qr_session/:id/image", qrSessionController.GetImage, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Get("/api/v1/qr_session/:id/pdf", qrSessionController.GetPDF, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Patch("/api/v1/qr_session/:id/deactivate", qrSessionController.Deactivate, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))

	// #attendance
	r.Post("/api/v1/attendance/scan", attendanceController.Scan, middleware.Authenticate(r.auth, auth.RoleStudent))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Post("/api/v1/attendance/create", attendanceController.CreateManual, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Patch("/api/v1/attendance/:id", attendanceController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #analytics
	r.Get("/api/v1/analytics", analyticsController.GetAnalytics, middleware.Authenticate(r.auth))

	// #timetable
	r.Get("/api/v1/timetable/list", timetableController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/timetable/create", timetableController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/timetable/:id", timetableController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/timetable/:id", timetableController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #notification
	r.Get("/api/v1/notification/list", notificationController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/notification/create", notificationController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleTeacher))
	r.Patch("/api/v1/notification/:id/read", notificationController.MarkRead, middleware.Authenticate(r.auth))
	r.Delete("/api/v1/notification/:id", notificationController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #chat
	r.Get("/api/v1/chat/history", chatController.GetHistory, middleware.Authenticate(r.auth))
	r.Post("/api/v1/chat/send", chatController.Send, middleware.Authenticate(r.auth))

	// #college info
	r.Get("/api/v1/college_info", collegeInfoController.Get, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/college_info/:id", collegeInfoController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
