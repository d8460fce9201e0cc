package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

// UserController 处理用户管理相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest 表示创建用户请求
type UserRequest struct {
	Username    string   `json:"username" binding:"required" example:"editor"`
	Password    string   `json:"password" binding:"required,min=6" example:"secret123"`
	Email       string   `json:"email" binding:"omitempty,email" example:"editor@example.com"`
	Role        string   `json:"role" binding:"omitempty,oneof=admin staff" example:"staff"`
	Permissions []string `json:"permissions"` // 例如 contacts.add_company
}

// UserUpdateRequest 表示更新用户请求
type UserUpdateRequest struct {
	Username    *string   `json:"username" example:"editor"`
	Password    *string   `json:"password" binding:"omitempty,min=6" example:"secret123"`
	Email       *string   `json:"email" binding:"omitempty,email" example:"editor@example.com"`
	Role        *string   `json:"role" binding:"omitempty,oneof=admin staff" example:"staff"`
	Permissions *[]string `json:"permissions"`
}

// HandleUserFunc 返回一个处理用户管理请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetUsers 获取用户列表
// @Summary 获取用户列表
// @Description 仅限管理员
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Success 200 {object} response.Response
// @Router /users [get]
func (c *UserController) GetUsers() {
	page, err := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.GetAllUsers(page, models.DefaultPageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取用户列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object_list": users,
		"page":        page,
		"total":       total,
	})
}

// 2. GetUser 获取用户详情
// @Summary 获取用户详情
// @Description 仅限管理员
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (c *UserController) GetUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object": user})
}

// 3. CreateUser 创建新用户
// @Summary 创建用户
// @Description 仅限管理员
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserRequest true "用户信息"
// @Success 201 {object} response.Response
// @Router /users [post]
func (c *UserController) CreateUser() {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	user := &models.User{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Role:        role,
		Permissions: req.Permissions,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, "/api/users/"+strconv.FormatUint(uint64(user.ID), 10), "用户已添加", gin.H{"object": user})
}

// 4. UpdateUser 更新用户信息
// @Summary 更新用户
// @Description 仅限管理员
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body UserUpdateRequest true "用户信息"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (c *UserController) UpdateUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		return
	}

	var req UserUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Permissions != nil {
		updates["permissions"] = *req.Permissions
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(uint(id), updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "用户已更新", gin.H{"object": user})
}

// 5. DeleteUser 删除用户
// @Summary 删除用户
// @Description 仅限管理员；不能删除最后一个管理员
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "用户已删除", gin.H{"deleted": true})
}
