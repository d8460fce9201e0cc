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

// InterfacePersonController 定义联系人控制器接口
type InterfacePersonController interface {
	GetPeople()
	GetPerson()
	CreatePerson()
	UpdatePerson()
	DeletePerson()
}

// PersonController 处理联系人相关的请求
type PersonController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPersonController 创建一个新的联系人控制器
func NewPersonController(ctx *gin.Context, container *container.ServiceContainer) *PersonController {
	return &PersonController{
		Ctx:       ctx,
		Container: container,
	}
}

// PersonRequest 表示创建联系人的请求
type PersonRequest struct {
	FirstName string `json:"first_name" binding:"required" example:"Jane"`
	LastName  string `json:"last_name" binding:"required" example:"Doe"`
	CompanyID *uint  `json:"company_id"`
}

// PersonUpdateRequest 表示更新联系人的请求
// 省略某组子记录表示该组保持不变，提交空数组表示清空该组
type PersonUpdateRequest struct {
	FirstName       string                `json:"first_name" binding:"required"`
	LastName        string                `json:"last_name" binding:"required"`
	CompanyID       *uint                 `json:"company_id"`
	PhoneNumbers    *[]PhoneNumberInput   `json:"phone_numbers" binding:"omitempty,dive"`
	EmailAddresses  *[]EmailAddressInput  `json:"email_addresses" binding:"omitempty,dive"`
	WebSites        *[]WebSiteInput       `json:"web_sites" binding:"omitempty,dive"`
	StreetAddresses *[]StreetAddressInput `json:"street_addresses" binding:"omitempty,dive"`
}

// HandlePersonFunc 返回一个处理联系人请求的Gin处理函数
func HandlePersonFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPersonController(ctx, container)

		switch method {
		case "getPeople":
			controller.GetPeople()
		case "getPerson":
			controller.GetPerson()
		case "getPersonDetailOrConfirm":
			controller.GetPersonDetailOrConfirm()
		case "createPerson":
			controller.CreatePerson()
		case "updatePerson":
			controller.UpdatePerson()
		case "deletePerson":
			controller.DeletePerson()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetPeople 获取联系人列表
// @Summary 获取联系人列表
// @Description 分页获取联系人列表，支持按姓名和公司名前缀搜索，支持按公司过滤
// @Tags Person
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Param q query string false "前缀搜索关键字"
// @Param company_id query int false "按公司过滤"
// @Success 200 {object} map[string]interface{}
// @Router /people [get]
func (c *PersonController) GetPeople() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	query := c.Ctx.Query("q")

	var companyID *uint
	if raw := c.Ctx.Query("company_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(parsed)
			companyID = &id
		}
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	people, p, err := personService.GetAllPeople(page, query, companyID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取联系人列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object_list":          people,
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

// 2. GetPerson 获取联系人详情
// @Summary 获取联系人详情
// @Tags Person
// @Produce json
// @Param id path int true "联系人ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /people/{id} [get]
func (c *PersonController) GetPerson() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPersonNotFound, nil)
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.GetPersonByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPersonNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object": person})
}

// GetPersonDetailOrConfirm 处理带尾段的详情路径
// 尾段为"delete"时返回删除确认信息，否则视为slug返回详情
func (c *PersonController) GetPersonDetailOrConfirm() {
	if c.Ctx.Param("slug") != "delete" {
		c.GetPerson()
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPersonNotFound, nil)
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.GetPersonByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPersonNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object":        person,
		"confirm_field": "confirm",
		"confirm_value": "Yes",
	})
}

// 3. CreatePerson 创建新联系人
// @Summary 创建联系人
// @Description 创建新联系人，需要 contacts.add_person 权限
// @Tags Person
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PersonRequest true "联系人信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /people [post]
func (c *PersonController) CreatePerson() {
	var req PersonRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	person := &models.Person{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CompanyID: req.CompanyID,
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	if err := personService.CreatePerson(person); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/people")
	response.Created(c.Ctx, person.AbsoluteURL(), "联系人已添加", gin.H{"object": person})
}

// 4. UpdatePerson 更新联系人及其子记录
// @Summary 更新联系人
// @Description 更新联系人主记录和四组子记录，保存在同一事务中完成；省略某组子记录表示该组保持不变，提交空数组表示清空该组；需要 contacts.change_person 权限
// @Tags Person
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系人ID"
// @Param request body PersonUpdateRequest true "联系人信息和子记录"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /people/{id} [put]
func (c *PersonController) UpdatePerson() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPersonNotFound, nil)
		return
	}

	var req PersonUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"company_id": req.CompanyID,
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.UpdatePerson(uint(id), updates, buildSubRecordSets(req.PhoneNumbers, req.EmailAddresses, req.WebSites, req.StreetAddresses))
	if err != nil {
		if err.Error() == "联系人不存在" {
			response.FailWithMessage(c.Ctx, code.ErrPersonNotFound, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/people")
	c.Ctx.Header("Location", person.AbsoluteURL())
	response.SuccessWithMessage(c.Ctx, "联系人已更新", gin.H{"object": person})
}

// 5. DeletePerson 删除联系人
// @Summary 删除联系人
// @Description 确认字段为"Yes"时删除联系人；需要 contacts.delete_person 权限
// @Tags Person
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系人ID"
// @Param request body DeleteConfirmRequest true "删除确认"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /people/{id} [delete]
func (c *PersonController) DeletePerson() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPersonNotFound, nil)
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.GetPersonByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPersonNotFound, err.Error(), nil)
		return
	}

	var req DeleteConfirmRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	if req.Confirm != "Yes" {
		c.Ctx.Header("Location", person.AbsoluteURL())
		response.Success(c.Ctx, gin.H{"deleted": false})
		return
	}

	if err := personService.DeletePerson(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除联系人失败: "+err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/people")
	c.Ctx.Header("Location", "/api/people")
	response.SuccessWithMessage(c.Ctx, "联系人已删除", gin.H{"deleted": true})
}
