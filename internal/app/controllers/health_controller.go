package controllers

import (
	"github.com/gin-gonic/gin"

	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

// HealthController 处理健康检查请求
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "health":
			controller.Health()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 存活检查
// @Summary 存活检查
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{"message": "pong"})
}

// Health 依赖健康检查，汇报数据库和Redis状态
// @Summary 健康检查
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (c *HealthController) Health() {
	status := gin.H{
		"database": "ok",
		"redis":    "disabled",
	}
	healthy := true

	sqlDB, err := c.Container.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		status["database"] = "unavailable"
		healthy = false
	}

	if redisService, ok := c.Container.GetService("redis").(*services.RedisService); ok && redisService != nil {
		if err := redisService.Ping(); err != nil {
			status["redis"] = "unavailable"
		} else {
			status["redis"] = "ok"
		}
	}

	if !healthy {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "服务不健康", status)
		return
	}

	response.Success(c.Ctx, status)
}
