package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "contacts-http-service/docs"
	"contacts-http-service/internal/app/admin"
	"contacts-http-service/internal/app/controllers"
	"contacts-http-service/internal/app/middleware"
	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/infrastructure/config"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, useRedis bool) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 为每个请求分配请求ID
	r.Use(middleware.RequestID())

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, useRedis)
	// 初始化认证中间件
	middleware.InitAuthMiddleware(serviceContainer.GetService("jwt").(services.InterfaceJWTService))
	// 注册管理站点配置
	admin.RegisterContactAdmins()

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由，列表和详情无需登录即可访问
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.RateLimiter(middleware.RateLimiterConfig{Rate: 10, Burst: 20}))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "health"))

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// 公司列表与详情
	api.GET("/companies", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleCompanyFunc(container, "getCompanies"))
	api.GET("/companies/:id", controllers.HandleCompanyFunc(container, "getCompany"))
	api.GET("/companies/:id/:slug", controllers.HandleCompanyFunc(container, "getCompanyDetailOrConfirm"))

	// 联系人列表与详情
	api.GET("/people", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandlePersonFunc(container, "getPeople"))
	api.GET("/people/:id", controllers.HandlePersonFunc(container, "getPerson"))
	api.GET("/people/:id/:slug", controllers.HandlePersonFunc(container, "getPersonDetailOrConfirm"))

	// 分组列表与详情
	api.GET("/groups", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleGroupFunc(container, "getGroups"))
	api.GET("/groups/:id", controllers.HandleGroupFunc(container, "getGroup"))
	api.GET("/groups/:id/:slug", controllers.HandleGroupFunc(container, "getGroupDetailOrConfirm"))

	// 位置类型列表与详情
	api.GET("/locations", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleLocationFunc(container, "getLocations"))
	api.GET("/locations/phone", controllers.HandleLocationFunc(container, "getPhoneLocations"))
	api.GET("/locations/street-address", controllers.HandleLocationFunc(container, "getStreetAddressLocations"))
	api.GET("/locations/:id", controllers.HandleLocationFunc(container, "getLocation"))
	api.GET("/locations/:id/:slug", controllers.HandleLocationFunc(container, "getLocationDetailOrConfirm"))

	// 评论列表
	api.GET("/comments", controllers.HandleCommentFunc(container, "getComments"))
}

// registerAuthenticatedRoutes 注册需要认证的路由，写操作按权限授权
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.RateLimiter(middleware.RateLimiterConfig{Rate: 30, Burst: 50}))

	// 公司写操作路由
	auth.POST("/companies", middleware.RequirePermission("contacts.add_company"), controllers.HandleCompanyFunc(container, "createCompany"))
	auth.PUT("/companies/:id", middleware.RequirePermission("contacts.change_company"), controllers.HandleCompanyFunc(container, "updateCompany"))
	auth.DELETE("/companies/:id", middleware.RequirePermission("contacts.delete_company"), controllers.HandleCompanyFunc(container, "deleteCompany"))

	// 联系人写操作路由
	auth.POST("/people", middleware.RequirePermission("contacts.add_person"), controllers.HandlePersonFunc(container, "createPerson"))
	auth.PUT("/people/:id", middleware.RequirePermission("contacts.change_person"), controllers.HandlePersonFunc(container, "updatePerson"))
	auth.DELETE("/people/:id", middleware.RequirePermission("contacts.delete_person"), controllers.HandlePersonFunc(container, "deletePerson"))

	// 分组写操作路由
	auth.POST("/groups", middleware.RequirePermission("contacts.add_group"), controllers.HandleGroupFunc(container, "createGroup"))
	auth.PUT("/groups/:id", middleware.RequirePermission("contacts.change_group"), controllers.HandleGroupFunc(container, "updateGroup"))
	auth.DELETE("/groups/:id", middleware.RequirePermission("contacts.delete_group"), controllers.HandleGroupFunc(container, "deleteGroup"))

	// 位置类型写操作路由
	auth.POST("/locations", middleware.RequirePermission("contacts.add_location"), controllers.HandleLocationFunc(container, "createLocation"))
	auth.PUT("/locations/:id", middleware.RequirePermission("contacts.change_location"), controllers.HandleLocationFunc(container, "updateLocation"))
	auth.DELETE("/locations/:id", middleware.RequirePermission("contacts.delete_location"), controllers.HandleLocationFunc(container, "deleteLocation"))

	// 评论写操作路由
	auth.POST("/comments", middleware.RequirePermission("contacts.add_comment"), controllers.HandleCommentFunc(container, "createComment"))
	auth.DELETE("/comments/:id", middleware.RequirePermission("contacts.delete_comment"), controllers.HandleCommentFunc(container, "deleteComment"))

	// 管理站点路由
	adminGroup := auth.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	adminGroup.GET("/site", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleAdminFunc(container, "getSite"))
	adminGroup.GET("/:entity", controllers.HandleAdminFunc(container, "getEntityList"))

	// 用户管理路由
	userGroup := auth.Group("/users")
	userGroup.Use(middleware.RequireAdmin())
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))
}
