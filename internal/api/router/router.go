package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"singular-attend/backend/config"
	"singular-attend/backend/internal/api/handler"
	"singular-attend/backend/internal/api/middleware"
	"singular-attend/backend/pkg/jwt"
	"singular-attend/backend/pkg/redis"
)

// maxBodyBytes 全局请求体上限（ICS 导入也走这里）
const maxBodyBytes = 2 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loginWindow := time.Duration(cfg.Auth.LoginRateLimitWindowSec) * time.Second

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 员工门户（无需认证，开放门户模型）
		portal := v1.Group("/portal")
		{
			portal.GET("/users", h.User.ListPortalUsers)
			portal.GET("/users/:id/attendance", h.Attendance.GetMonth)
			portal.POST("/users/:id/attendance/cycle", h.Attendance.PortalCycle)
		}

		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, loginWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 管理端路由（需要认证）
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// 员工模块
			users := authorized.Group("/users")
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
			}

			// 考勤类别模块
			categories := authorized.Group("/categories")
			{
				categories.GET("", h.Category.ListCategories)
				categories.GET("/:id", h.Category.GetCategory)
				categories.POST("", h.Category.CreateCategory)
				categories.PUT("/:id", h.Category.UpdateCategory)
				categories.DELETE("/:id", h.Category.DeleteCategory)
			}

			// 部门模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", h.Department.CreateDepartment)
				departments.PUT("/:id", h.Department.UpdateDepartment)
				departments.DELETE("/:id", h.Department.DeleteDepartment)
			}

			// 公司假日模块
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.ListHolidays)
				holidays.POST("", h.Holiday.CreateHoliday)
				holidays.DELETE("/:id", h.Holiday.DeleteHoliday)
				holidays.POST("/import-ics", h.Holiday.ImportICS)
			}

			// 考勤编辑模块（管理端）
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/cycle", h.Attendance.Cycle)
				attendance.PUT("", h.Attendance.Set)
				attendance.DELETE("", h.Attendance.Clear)
			}

			// 报表模块
			reports := authorized.Group("/reports")
			{
				reports.GET("/matrix", h.Report.GetMatrix)
				reports.GET("/attendance", h.Report.ExportAttendance)
			}
		}
	}

	return r
}
