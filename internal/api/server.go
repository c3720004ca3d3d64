package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tobscouts/troop-api/docs"
	v1 "github.com/tobscouts/troop-api/internal/api/handler/v1"
	"github.com/tobscouts/troop-api/internal/api/middleware"
	"github.com/tobscouts/troop-api/internal/config"
	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/identity"
	"github.com/tobscouts/troop-api/internal/metrics"
	"github.com/tobscouts/troop-api/internal/repository"
	"github.com/tobscouts/troop-api/internal/repository/dao"
	"github.com/tobscouts/troop-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, idClient *identity.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	scoutRepo := repository.NewScoutRepository(dao.NewScoutDAO(db))
	attendanceRepo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	badgeRepo := repository.NewBadgeRepository(dao.NewBadgeDAO(db))
	noticeRepo := repository.NewNoticeRepository(dao.NewNoticeDAO(db))

	provisionSvc := service.NewProvisioningService(idClient, scoutRepo, conf.API.FrontendURL)
	adminHandler := v1.NewAdminHandler(
		service.NewAdminService(idClient, scoutRepo, conf.API.FrontendURL),
		provisionSvc,
	)
	scoutHandler := v1.NewScoutHandler(
		service.NewScoutService(scoutRepo, badgeRepo, attendanceRepo, idClient),
		provisionSvc,
	)
	attendanceHandler := v1.NewAttendanceHandler(service.NewAttendanceService(attendanceRepo))
	badgeHandler := v1.NewBadgeHandler(service.NewBadgeService(badgeRepo, scoutRepo))
	noticeHandler := v1.NewNoticeHandler(service.NewNoticeService(noticeRepo))
	statsHandler := v1.NewStatsHandler(service.NewStatsService(scoutRepo, attendanceRepo, badgeRepo, noticeRepo))

	s.MountHandlers(scoutRepo, adminHandler, scoutHandler, attendanceHandler, badgeHandler, noticeHandler, statsHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(metrics.Collect())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	roles middleware.RoleFinder,
	adminHandler *v1.AdminHandler,
	scoutHandler *v1.ScoutHandler,
	attendanceHandler *v1.AttendanceHandler,
	badgeHandler *v1.BadgeHandler,
	noticeHandler *v1.NoticeHandler,
	statsHandler *v1.StatsHandler,
) {
	// The legacy surface the SPA already talks to. These routes carry the
	// service role key server-side and were never behind middleware; access
	// control still lives in the frontend.
	legacy := s.Router.Group("/api")
	{
		legacy.POST("/invite-user", adminHandler.HandleInviteUser)
		legacy.GET("/list-users", adminHandler.HandleListUsers)
		legacy.POST("/delete-user", adminHandler.HandleDeleteUser)
		legacy.POST("/confirm-user-email", adminHandler.HandleConfirmUserEmail)
		legacy.POST("/sign-in", adminHandler.HandleSignIn)
		legacy.POST("/auth/forgot-password", adminHandler.HandleForgotPassword)
		legacy.POST("/auth/update-password", adminHandler.HandleUpdatePassword)
		legacy.GET("/test-rls", adminHandler.HandleVisibleScouts)
		legacy.POST("/scout-management/add-scout", scoutHandler.HandleAddScout)
		legacy.DELETE("/scout-management/delete-scout/:scoutID", scoutHandler.HandleDeleteScout)
	}

	const basePath = "/api/v1"

	authn := middleware.NewAuthenticator(s.Config.Identity.JWTSecret, roles)

	// Routes any signed-in member may call.
	members := s.Router.Group(basePath, authn.VerifySession())
	{
		members.GET("/me/profile", scoutHandler.HandleGetOwnProfile)
		members.GET("/me/attendance", scoutHandler.HandleGetOwnAttendance)
		members.GET("/noticeboard", noticeHandler.HandleListActiveNotices)
	}

	// Everything else is leader-only.
	leaders := s.Router.Group(basePath, authn.VerifySession(), middleware.RequireRole(domain.RoleLeader))
	{
		leaders.GET("/scouts", scoutHandler.HandleListScouts)
		leaders.GET("/scouts/:scoutID", scoutHandler.HandleGetScout)
		leaders.PUT("/scouts/:scoutID", scoutHandler.HandleUpdateScout)
		leaders.GET("/scouts/:scoutID/profile", scoutHandler.HandleGetScoutProfile)
		leaders.GET("/scouts/:scoutID/badges", badgeHandler.HandleScoutAwards)

		leaders.GET("/attendance", attendanceHandler.HandleListRecords)
		leaders.POST("/attendance", attendanceHandler.HandleCreateRecord)
		leaders.GET("/attendance/activity-types", attendanceHandler.HandleActivityTypes)
		leaders.GET("/attendance/:recordID", attendanceHandler.HandleGetRecord)
		leaders.PUT("/attendance/:recordID", attendanceHandler.HandleUpdateRecord)
		leaders.DELETE("/attendance/:recordID", attendanceHandler.HandleDeleteRecord)

		leaders.GET("/badges", badgeHandler.HandleListBadges)
		leaders.POST("/badges", badgeHandler.HandleCreateBadge)
		leaders.POST("/badges/awards", badgeHandler.HandleAwardBadge)
		leaders.DELETE("/badges/awards/:awardID", badgeHandler.HandleRevokeAward)
		leaders.GET("/badges/:badgeID", badgeHandler.HandleGetBadge)
		leaders.PUT("/badges/:badgeID", badgeHandler.HandleUpdateBadge)
		leaders.DELETE("/badges/:badgeID", badgeHandler.HandleDeleteBadge)

		leaders.GET("/notices", noticeHandler.HandleListNotices)
		leaders.POST("/notices", noticeHandler.HandleCreateNotice)
		leaders.GET("/notices/:noticeID", noticeHandler.HandleGetNotice)
		leaders.PUT("/notices/:noticeID", noticeHandler.HandleUpdateNotice)
		leaders.DELETE("/notices/:noticeID", noticeHandler.HandleDeleteNotice)

		leaders.GET("/stats/summary", statsHandler.HandleSummary)
		leaders.GET("/stats/attendance", statsHandler.HandleAttendanceRates)
		leaders.GET("/stats/low-attendance", statsHandler.HandleLowAttendance)

		leaders.GET("/leaders", adminHandler.HandleListLeaders)
		leaders.POST("/leaders", adminHandler.HandlePromoteLeader)
		leaders.DELETE("/leaders/:accountID", adminHandler.HandleDemoteLeader)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Title = "Troop administration API"
	docs.SwaggerInfo.Description = "Membership, attendance, badge and noticeboard administration for a scout troop."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
