package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

// CommentController 处理评论相关的请求
type CommentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCommentController 创建一个新的评论控制器
func NewCommentController(ctx *gin.Context, container *container.ServiceContainer) *CommentController {
	return &CommentController{
		Ctx:       ctx,
		Container: container,
	}
}

// CommentRequest 表示评论请求
type CommentRequest struct {
	OwnerType string `json:"owner_type" binding:"required" example:"company"`
	OwnerID   uint   `json:"owner_id" binding:"required" example:"1"`
	Author    string `json:"author" binding:"required" example:"admin"`
	Body      string `json:"body" binding:"required" example:"Called about the invoice."`
}

// HandleCommentFunc 返回一个处理评论请求的Gin处理函数
func HandleCommentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCommentController(ctx, container)

		switch method {
		case "getComments":
			controller.GetComments()
		case "createComment":
			controller.CreateComment()
		case "deleteComment":
			controller.DeleteComment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetComments 获取所属对象的评论列表，按提交时间排列
// @Summary 获取评论列表
// @Tags Comment
// @Produce json
// @Param owner_type query string true "所属对象类型（company/person/group/location）"
// @Param owner_id query int true "所属对象ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments [get]
func (c *CommentController) GetComments() {
	ownerType := c.Ctx.Query("owner_type")
	ownerID, err := strconv.ParseUint(c.Ctx.Query("owner_id"), 10, 32)
	if err != nil || ownerType == "" {
		response.FailWithMessage(c.Ctx, code.ErrBind, "缺少owner_type或owner_id参数", nil)
		return
	}

	commentService := c.Container.GetService("comment").(services.InterfaceCommentService)
	comments, err := commentService.GetComments(ownerType, uint(ownerID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrOwnerNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object_list": comments})
}

// 2. CreateComment 为所属对象添加评论
// @Summary 添加评论
// @Description 需要 contacts.add_comment 权限
// @Tags Comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CommentRequest true "评论信息"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments [post]
func (c *CommentController) CreateComment() {
	var req CommentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	comment := &models.Comment{
		OwnerType: req.OwnerType,
		OwnerID:   req.OwnerID,
		Author:    req.Author,
		Body:      req.Body,
	}

	commentService := c.Container.GetService("comment").(services.InterfaceCommentService)
	if err := commentService.CreateComment(comment); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrOwnerNotFound, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, ownerDetailURL(req.OwnerType, req.OwnerID), "评论已添加", gin.H{"object": comment})
}

// ownerDetailURL 返回所属对象详情的URL，创建评论后导向该页面
func ownerDetailURL(ownerType string, ownerID uint) string {
	prefix := map[string]string{
		models.OwnerTypeCompany:  "companies",
		models.OwnerTypePerson:   "people",
		models.OwnerTypeGroup:    "groups",
		models.OwnerTypeLocation: "locations",
	}[ownerType]
	return fmt.Sprintf("/api/%s/%d", prefix, ownerID)
}

// 3. DeleteComment 删除评论
// @Summary 删除评论
// @Description 需要 contacts.delete_comment 权限
// @Tags Comment
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/{id} [delete]
func (c *CommentController) DeleteComment() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrCommentNotFound, nil)
		return
	}

	commentService := c.Container.GetService("comment").(services.InterfaceCommentService)
	if err := commentService.DeleteComment(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCommentNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "评论已删除", gin.H{"deleted": true})
}
