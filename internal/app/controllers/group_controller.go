package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts-http-service/internal/app/middleware"
	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

// GroupController 处理分组相关的请求
type GroupController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGroupController 创建一个新的分组控制器
func NewGroupController(ctx *gin.Context, container *container.ServiceContainer) *GroupController {
	return &GroupController{
		Ctx:       ctx,
		Container: container,
	}
}

// GroupRequest 表示分组请求
type GroupRequest struct {
	Name  string `json:"name" binding:"required" example:"Suppliers"`
	About string `json:"about"`
}

// HandleGroupFunc 返回一个处理分组请求的Gin处理函数
func HandleGroupFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGroupController(ctx, container)

		switch method {
		case "getGroups":
			controller.GetGroups()
		case "getGroup":
			controller.GetGroup()
		case "getGroupDetailOrConfirm":
			controller.GetGroupDetailOrConfirm()
		case "createGroup":
			controller.CreateGroup()
		case "updateGroup":
			controller.UpdateGroup()
		case "deleteGroup":
			controller.DeleteGroup()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetGroups 获取分组列表，按修改时间倒序
// @Summary 获取分组列表
// @Tags Group
// @Produce json
// @Param page query int false "页码，默认为1"
// @Success 200 {object} map[string]interface{}
// @Router /groups [get]
func (c *GroupController) GetGroups() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))

	groupService := c.Container.GetService("group").(services.InterfaceGroupService)
	groups, p, err := groupService.GetAllGroups(page)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取分组列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object_list":          groups,
		"has_next":             p.HasNext,
		"has_previous":         p.HasPrevious,
		"has_other_pages":      p.HasOtherPages,
		"start_index":          p.StartIndex,
		"end_index":            p.EndIndex,
		"next_page_number":     p.NextPageNumber,
		"previous_page_number": p.PreviousPageNumber,
		"page":                 p.Number,
		"num_pages":            p.NumPages,
		"total":                p.Total,
	})
}

// 2. GetGroup 获取分组详情
// @Summary 获取分组详情
// @Tags Group
// @Produce json
// @Param id path int true "分组ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrGroupNotFound, nil)
		return
	}

	groupService := c.Container.GetService("group").(services.InterfaceGroupService)
	group, err := groupService.GetGroupByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrGroupNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object": group})
}

// GetGroupDetailOrConfirm 处理带尾段的详情路径
func (c *GroupController) GetGroupDetailOrConfirm() {
	if c.Ctx.Param("slug") != "delete" {
		c.GetGroup()
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrGroupNotFound, nil)
		return
	}

	groupService := c.Container.GetService("group").(services.InterfaceGroupService)
	group, err := groupService.GetGroupByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrGroupNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object":        group,
		"confirm_field": "confirm",
		"confirm_value": "Yes",
	})
}

// 3. CreateGroup 创建新分组
// @Summary 创建分组
// @Description 需要 contacts.add_group 权限
// @Tags Group
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GroupRequest true "分组信息"
// @Success 201 {object} response.Response
// @Router /groups [post]
func (c *GroupController) CreateGroup() {
	var req GroupRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	group := &models.Group{
		Name:  req.Name,
		About: req.About,
	}

	groupService := c.Container.GetService("group").(services.InterfaceGroupService)
	if err := groupService.CreateGroup(group); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建分组失败: "+err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/groups")
	response.Created(c.Ctx, group.AbsoluteURL(), "分组已添加", gin.H{"object": group})
}

// 4. UpdateGroup 更新分组信息
// @Summary 更新分组
// @Description 需要 contacts.change_group 权限
// @Tags Group
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分组ID"
// @Param request body GroupRequest true "分组信息"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrGroupNotFound, nil)
		return
	}

	var req GroupRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"about": req.About,
	}

	groupService := c.Container.GetService("group").(services.InterfaceGroupService)
	group, err := groupService.UpdateGroup(uint(id), updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrGroupNotFound, err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/groups")
	c.Ctx.Header("Location", group.AbsoluteURL())
	response.SuccessWithMessage(c.Ctx, "分组已更新", gin.H{"object": group})
}

// 5. DeleteGroup 删除分组
// @Summary 删除分组
// @Description 确认字段为"Yes"时删除；需要 contacts.delete_group 权限
// @Tags Group
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分组ID"
// @Param request body DeleteConfirmRequest true "删除确认"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrGroupNotFound, nil)
		return
	}

	groupService := c.Container.GetService("group").(services.InterfaceGroupService)
	group, err := groupService.GetGroupByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrGroupNotFound, err.Error(), nil)
		return
	}

	var req DeleteConfirmRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	if req.Confirm != "Yes" {
		c.Ctx.Header("Location", group.AbsoluteURL())
		response.Success(c.Ctx, gin.H{"deleted": false})
		return
	}

	if err := groupService.DeleteGroup(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除分组失败: "+err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/groups")
	c.Ctx.Header("Location", "/api/groups")
	response.SuccessWithMessage(c.Ctx, "分组已删除", gin.H{"deleted": true})
}
