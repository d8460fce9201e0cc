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

// LocationController 处理位置类型相关的请求
type LocationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewLocationController 创建一个新的位置类型控制器
func NewLocationController(ctx *gin.Context, container *container.ServiceContainer) *LocationController {
	return &LocationController{
		Ctx:       ctx,
		Container: container,
	}
}

// LocationRequest 表示位置类型请求
type LocationRequest struct {
	Name            string `json:"name" binding:"required" example:"Work"`
	Weight          int    `json:"weight"`
	IsPhone         bool   `json:"is_phone"`          // 可用于电话号码
	IsStreetAddress bool   `json:"is_street_address"` // 可用于街道地址
}

// HandleLocationFunc 返回一个处理位置类型请求的Gin处理函数
func HandleLocationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLocationController(ctx, container)

		switch method {
		case "getLocations":
			controller.GetLocations()
		case "getLocation":
			controller.GetLocation()
		case "getLocationDetailOrConfirm":
			controller.GetLocationDetailOrConfirm()
		case "getPhoneLocations":
			controller.GetPhoneLocations()
		case "getStreetAddressLocations":
			controller.GetStreetAddressLocations()
		case "createLocation":
			controller.CreateLocation()
		case "updateLocation":
			controller.UpdateLocation()
		case "deleteLocation":
			controller.DeleteLocation()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetLocations 获取位置类型列表，按权重和名称排列
// @Summary 获取位置类型列表
// @Tags Location
// @Produce json
// @Param page query int false "页码，默认为1"
// @Success 200 {object} map[string]interface{}
// @Router /locations [get]
func (c *LocationController) GetLocations() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	locations, p, err := locationService.GetAllLocations(page)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取位置类型列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object_list":          locations,
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

// 2. GetLocation 获取位置类型详情
// @Summary 获取位置类型详情
// @Tags Location
// @Produce json
// @Param id path int true "位置类型ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /locations/{id} [get]
func (c *LocationController) GetLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrLocationNotFound, nil)
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	location, err := locationService.GetLocationByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrLocationNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object": location})
}

// GetLocationDetailOrConfirm 处理带尾段的详情路径
func (c *LocationController) GetLocationDetailOrConfirm() {
	if c.Ctx.Param("slug") != "delete" {
		c.GetLocation()
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrLocationNotFound, nil)
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	location, err := locationService.GetLocationByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrLocationNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object":        location,
		"confirm_field": "confirm",
		"confirm_value": "Yes",
	})
}

// 3. GetPhoneLocations 获取可用于电话号码的位置类型
// @Summary 获取电话号码可选的位置类型
// @Tags Location
// @Produce json
// @Success 200 {object} response.Response
// @Router /locations/phone [get]
func (c *LocationController) GetPhoneLocations() {
	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	locations, err := locationService.GetPhoneLocations()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取位置类型失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object_list": locations})
}

// 4. GetStreetAddressLocations 获取可用于街道地址的位置类型
// @Summary 获取街道地址可选的位置类型
// @Tags Location
// @Produce json
// @Success 200 {object} response.Response
// @Router /locations/street-address [get]
func (c *LocationController) GetStreetAddressLocations() {
	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	locations, err := locationService.GetStreetAddressLocations()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取位置类型失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object_list": locations})
}

// 5. CreateLocation 创建新位置类型
// @Summary 创建位置类型
// @Description 需要 contacts.add_location 权限
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LocationRequest true "位置类型信息"
// @Success 201 {object} response.Response
// @Router /locations [post]
func (c *LocationController) CreateLocation() {
	var req LocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	location := &models.Location{
		Name:            req.Name,
		Weight:          req.Weight,
		IsPhone:         req.IsPhone,
		IsStreetAddress: req.IsStreetAddress,
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	if err := locationService.CreateLocation(location); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建位置类型失败: "+err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/locations")
	response.Created(c.Ctx, location.AbsoluteURL(), "位置类型已添加", gin.H{"object": location})
}

// 6. UpdateLocation 更新位置类型信息
// @Summary 更新位置类型
// @Description 需要 contacts.change_location 权限
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "位置类型ID"
// @Param request body LocationRequest true "位置类型信息"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /locations/{id} [put]
func (c *LocationController) UpdateLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrLocationNotFound, nil)
		return
	}

	var req LocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{
		"name":              req.Name,
		"weight":            req.Weight,
		"is_phone":          req.IsPhone,
		"is_street_address": req.IsStreetAddress,
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	location, err := locationService.UpdateLocation(uint(id), updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrLocationNotFound, err.Error(), nil)
		return
	}

	c.Ctx.Header("Location", location.AbsoluteURL())
	middleware.PurgeCacheByPrefix("/api/locations")
	response.SuccessWithMessage(c.Ctx, "位置类型已更新", gin.H{"object": location})
}

// 7. DeleteLocation 删除位置类型
// @Summary 删除位置类型
// @Description 确认字段为"Yes"时删除；需要 contacts.delete_location 权限
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "位置类型ID"
// @Param request body DeleteConfirmRequest true "删除确认"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /locations/{id} [delete]
func (c *LocationController) DeleteLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrLocationNotFound, nil)
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	location, err := locationService.GetLocationByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrLocationNotFound, err.Error(), nil)
		return
	}

	var req DeleteConfirmRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	if req.Confirm != "Yes" {
		c.Ctx.Header("Location", location.AbsoluteURL())
		response.Success(c.Ctx, gin.H{"deleted": false})
		return
	}

	if err := locationService.DeleteLocation(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除位置类型失败: "+err.Error(), nil)
		return
	}

	c.Ctx.Header("Location", "/api/locations")
	middleware.PurgeCacheByPrefix("/api/locations")
	response.SuccessWithMessage(c.Ctx, "位置类型已删除", gin.H{"deleted": true})
}
