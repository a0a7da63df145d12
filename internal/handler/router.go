package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/myrestapi/backend/internal/config"
	"github.com/myrestapi/backend/internal/db"
	"github.com/myrestapi/backend/internal/model"
	"github.com/myrestapi/backend/internal/service"
	"github.com/myrestapi/backend/internal/validation"
)

// NewRouter wires repositories, services and handlers into the gin engine.
func NewRouter(cfg config.Config, log zerolog.Logger, store *db.Postgres) (*gin.Engine, error) {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validation.New()
	rules := validation.NewLectureValidator()

	authSvc, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		return nil, err
	}
	tokenSvc, err := service.NewTokenService(store, store, cfg.Auth)
	if err != nil {
		return nil, err
	}
	lectureSvc := service.NewLectureService(store, validate, rules)

	lectureHandler := NewLectureHandler(lectureSvc, log)
	userHandler := NewUserHandler(authSvc, tokenSvc, validate, log)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	if origins := corsOrigins(cfg.Server.CORSOrigins); len(origins) > 0 {
		r.Use(CORSMiddleware(origins))
	}

	r.GET("/healthz", Ping)
	r.GET("/openapi.json", OpenAPIDoc)
	r.GET("/api", Index)

	lectures := r.Group("/api/lectures")
	lectures.GET("/:id", AuthMiddleware(authSvc), RequireRole(model.RoleUser), lectureHandler.Get)
	lectures.GET("", AuthMiddleware(authSvc), RequireRole(model.RoleAdmin), lectureHandler.List)
	lectures.POST("", OptionalAuthMiddleware(authSvc), lectureHandler.Create)
	lectures.PUT("/:id", AuthMiddleware(authSvc), lectureHandler.Update)

	users := r.Group("/users")
	users.GET("/welcome", userHandler.Welcome)
	users.POST("/new", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/refreshToken", userHandler.RefreshToken)

	return r, nil
}

// corsOrigins parses the comma-separated origin list; an empty or blank
// value yields nil so no CORS middleware gets installed.
func corsOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
