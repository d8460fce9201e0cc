package container

import (
	"sync"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/infrastructure/config"
	"contacts-http-service/pkg/logger"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService *services.RedisService
	userService  services.InterfaceUserService

	// 业务服务
	companyService  services.InterfaceCompanyService
	personService   services.InterfacePersonService
	groupService    services.InterfaceGroupService
	locationService services.InterfaceLocationService
	commentService  services.InterfaceCommentService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
// useRedis为false时不连接Redis，列表缓存被禁用
func NewServiceContainer(db *gorm.DB, cfg *config.Config, useRedis bool) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}

	if useRedis {
		container.redisService = services.NewRedisService(cfg)

		// 测试Redis连接
		if err := container.redisService.Ping(); err != nil {
			logger.Warning("Redis连接测试失败: %v，将不使用Redis缓存", err)
			container.redisService = nil
		}
	}

	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.userService = services.NewUserService(c.db, c.config)

	// 初始化业务服务
	c.companyService = services.NewCompanyService(c.db, c.config, c.redisService)
	c.personService = services.NewPersonService(c.db, c.config)
	c.groupService = services.NewGroupService(c.db, c.config)
	c.locationService = services.NewLocationService(c.db, c.config)
	c.commentService = services.NewCommentService(c.db, c.config)
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetService 根据名称获取服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "user":
		return c.userService
	case "company":
		return c.companyService
	case "person":
		return c.personService
	case "group":
		return c.groupService
	case "location":
		return c.locationService
	case "comment":
		return c.commentService
	default:
		return nil
	}
}
