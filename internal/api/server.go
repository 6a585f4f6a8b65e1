package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubseats/clubseats-api/docs"
	v1 "github.com/clubseats/clubseats-api/internal/api/handler/v1"
	"github.com/clubseats/clubseats-api/internal/api/middleware"
	"github.com/clubseats/clubseats-api/internal/config"
	"github.com/clubseats/clubseats-api/internal/repository"
	"github.com/clubseats/clubseats-api/internal/repository/dao"
	"github.com/clubseats/clubseats-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	pSvc := s.initPrincipalService(db)
	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db, pSvc)
	clubHandler := s.initClubHandler(db, pSvc)
	eventHandler := s.initEventHandler(db, pSvc)
	reservationHandler := s.initReservationHandler(db, pSvc)
	s.MountHandlers(authHandler, userHandler, clubHandler, eventHandler, reservationHandler)

	return s
}

func (s *Server) initPrincipalService(db *gorm.DB) *service.PrincipalService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO, s.Config.Postgres.QueryTimeout)
	svc := service.NewPrincipalService(repo)

	return svc
}

func (s *Server) initAuthzService(db *gorm.DB) *service.AuthzService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO, s.Config.Postgres.QueryTimeout)
	svc := service.NewAuthzService(repo)

	return svc
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO, s.Config.Postgres.QueryTimeout)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB, pSvc *service.PrincipalService) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO, s.Config.Postgres.QueryTimeout)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc, pSvc)

	return handler
}

func (s *Server) initClubHandler(db *gorm.DB, pSvc *service.PrincipalService) *v1.ClubHandler {
	clubDAO := dao.NewClubDAO(db)
	repo := repository.NewClubRepository(clubDAO, s.Config.Postgres.QueryTimeout)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db), s.Config.Postgres.QueryTimeout)
	svc := service.NewClubService(repo, userRepo, s.initAuthzService(db))
	handler := v1.NewClubHandler(svc, pSvc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, pSvc *service.PrincipalService) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO, s.Config.Postgres.QueryTimeout)
	svc := service.NewEventService(repo, s.initAuthzService(db))
	admissionSvc := s.initAdmissionService(db)
	handler := v1.NewEventHandler(svc, admissionSvc, pSvc)

	return handler
}

func (s *Server) initReservationHandler(db *gorm.DB, pSvc *service.PrincipalService) *v1.ReservationHandler {
	svc := s.initAdmissionService(db)
	handler := v1.NewReservationHandler(svc, pSvc)

	return handler
}

func (s *Server) initAdmissionService(db *gorm.DB) *service.AdmissionService {
	reservationDAO := dao.NewReservationDAO(db)
	repo := repository.NewReservationRepository(reservationDAO, s.Config.Postgres.QueryTimeout)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db), s.Config.Postgres.QueryTimeout)
	svc := service.NewAdmissionService(repo, eventRepo, s.initAuthzService(db), s.Config.Reservations)

	return svc
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	clubHandler *v1.ClubHandler,
	eventHandler *v1.EventHandler,
	reservationHandler *v1.ReservationHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/users/me", userHandler.HandleGetMe)

		protected.POST("/clubs", clubHandler.HandleCreateClub)
		protected.GET("/clubs/:clubID", clubHandler.HandleGetClub)
		protected.POST("/clubs/:clubID/join", clubHandler.HandleJoinClub)
		protected.POST("/clubs/:clubID/managers", clubHandler.HandlePromoteManager)

		protected.POST("/clubs/:clubID/events", eventHandler.HandleCreateEvent)
		protected.GET("/clubs/:clubID/events", eventHandler.HandleListClubEvents)
		protected.GET("/events/:eventID", eventHandler.HandleGetEvent)
		protected.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		protected.POST("/events/:eventID/categories", eventHandler.HandleCreateCategory)
		protected.PATCH("/categories/:categoryID/capacity", eventHandler.HandleSetCategoryCapacity)
		protected.DELETE("/categories/:categoryID", eventHandler.HandleDeleteCategory)

		protected.POST("/reservations", reservationHandler.HandleCreateReservation)
		protected.GET("/reservations", reservationHandler.HandleListReservations)
		protected.GET("/reservations/:reservationID", reservationHandler.HandleGetReservation)
		protected.DELETE("/reservations/:reservationID", reservationHandler.HandleCancelReservation)
		protected.POST("/reservations/check-in", reservationHandler.HandleCheckIn)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Club Seats API"
	docs.SwaggerInfo.Description = "Membership, events and seat reservations for clubs."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
