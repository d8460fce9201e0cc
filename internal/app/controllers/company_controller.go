package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts-http-service/internal/app/middleware"
	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

// InterfaceCompanyController 定义公司控制器接口
type InterfaceCompanyController interface {
	GetCompanies()
	GetCompany()
	CreateCompany()
	UpdateCompany()
	DeleteCompany()
}

// CompanyController 处理公司相关的请求
type CompanyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCompanyController 创建一个新的公司控制器
func NewCompanyController(ctx *gin.Context, container *container.ServiceContainer) *CompanyController {
	return &CompanyController{
		Ctx:       ctx,
		Container: container,
	}
}

// CompanyRequest 表示创建公司的请求
type CompanyRequest struct {
	Name  string `json:"name" binding:"required" example:"Acme Inc"`
	About string `json:"about" example:"A fine company"`
}

// PhoneNumberInput 表示提交的电话号码子记录
type PhoneNumberInput struct {
	ID         uint   `json:"id"`
	LocationID *uint  `json:"location_id"`
	Number     string `json:"number" binding:"required" example:"+1 555 0100"`
}

// EmailAddressInput 表示提交的邮箱子记录
type EmailAddressInput struct {
	ID         uint   `json:"id"`
	LocationID *uint  `json:"location_id"`
	Address    string `json:"address" binding:"required,email" example:"info@acme.test"`
}

// WebSiteInput 表示提交的网站子记录
type WebSiteInput struct {
	ID         uint   `json:"id"`
	LocationID *uint  `json:"location_id"`
	URL        string `json:"url" binding:"required,url" example:"https://acme.test"`
}

// StreetAddressInput 表示提交的街道地址子记录
type StreetAddressInput struct {
	ID         uint   `json:"id"`
	LocationID *uint  `json:"location_id"`
	Street     string `json:"street" binding:"required" example:"1 Main St"`
	City       string `json:"city" example:"Springfield"`
	Province   string `json:"province" example:"IL"`
	PostalCode string `json:"postal_code" example:"62701"`
	Country    string `json:"country" example:"USA"`
}

// CompanyUpdateRequest 表示更新公司的请求
// 主记录字段和四组子记录一起提交，全部通过验证才会保存
// 省略某组子记录表示该组保持不变，提交空数组表示清空该组
type CompanyUpdateRequest struct {
	Name            string                `json:"name" binding:"required"`
	About           string                `json:"about"`
	PhoneNumbers    *[]PhoneNumberInput   `json:"phone_numbers" binding:"omitempty,dive"`
	EmailAddresses  *[]EmailAddressInput  `json:"email_addresses" binding:"omitempty,dive"`
	WebSites        *[]WebSiteInput       `json:"web_sites" binding:"omitempty,dive"`
	StreetAddresses *[]StreetAddressInput `json:"street_addresses" binding:"omitempty,dive"`
}

// DeleteConfirmRequest 表示删除确认请求
type DeleteConfirmRequest struct {
	Confirm string `json:"confirm" binding:"required" example:"Yes"`
}

// HandleCompanyFunc 返回一个处理公司请求的Gin处理函数
func HandleCompanyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCompanyController(ctx, container)

		switch method {
		case "getCompanies":
			controller.GetCompanies()
		case "getCompany":
			controller.GetCompany()
		case "getCompanyDetailOrConfirm":
			controller.GetCompanyDetailOrConfirm()
		case "createCompany":
			controller.CreateCompany()
		case "updateCompany":
			controller.UpdateCompany()
		case "deleteCompany":
			controller.DeleteCompany()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetCompanies 获取公司列表
// @Summary 获取公司列表
// @Description 分页获取公司列表，每页20条；页码无效或超出范围时返回最后一页
// @Tags Company
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /companies [get]
func (c *CompanyController) GetCompanies() {
	// 页码解析失败时传入0，分页计算会回退到最后一页
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))

	companyService := c.Container.GetService("company").(services.InterfaceCompanyService)
	companies, p, err := companyService.GetAllCompanies(page)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取公司列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"object_list":          companies,
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

// 2. GetCompany 获取公司详情
// @Summary 获取公司详情
// @Description 根据ID获取公司详情，包含全部子记录和评论
// @Tags Company
// @Accept json
// @Produce json
// @Param id path int true "公司ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [get]
func (c *CompanyController) GetCompany() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrCompanyNotFound, nil)
		return
	}

	companyService := c.Container.GetService("company").(services.InterfaceCompanyService)
	company, err := companyService.GetCompanyByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCompanyNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"object": company})
}

// GetCompanyDetailOrConfirm 处理带尾段的详情路径
// 尾段为"delete"时返回删除确认信息，否则视为slug返回详情
// slug仅用于URL美观，查找始终使用主键
func (c *CompanyController) GetCompanyDetailOrConfirm() {
	if c.Ctx.Param("slug") != "delete" {
		c.GetCompany()
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrCompanyNotFound, nil)
		return
	}

	companyService := c.Container.GetService("company").(services.InterfaceCompanyService)
	company, err := companyService.GetCompanyByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCompanyNotFound, err.Error(), nil)
		return
	}

	// 删除确认：提交 confirm="Yes" 到 DELETE /companies/{id} 才会执行删除
	response.Success(c.Ctx, gin.H{
		"object":        company,
		"confirm_field": "confirm",
		"confirm_value": "Yes",
	})
}

// 3. CreateCompany 创建新公司
// @Summary 创建公司
// @Description 创建新公司，需要 contacts.add_company 权限
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompanyRequest true "公司信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /companies [post]
func (c *CompanyController) CreateCompany() {
	var req CompanyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	company := &models.Company{
		Name:  req.Name,
		About: req.About,
	}

	companyService := c.Container.GetService("company").(services.InterfaceCompanyService)
	if err := companyService.CreateCompany(company); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCompanyAlreadyExist, err.Error(), nil)
		return
	}

	// 列表有短缓存，变更后立即失效
	middleware.PurgeCacheByPrefix("/api/companies")
	response.Created(c.Ctx, company.AbsoluteURL(), "公司已添加", gin.H{"object": company})
}

// 4. UpdateCompany 更新公司及其子记录
// @Summary 更新公司
// @Description 更新公司主记录和四组子记录，全部通过验证才保存，保存在同一事务中完成；省略某组子记录表示该组保持不变，提交空数组表示清空该组；需要 contacts.change_company 权限
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "公司ID"
// @Param request body CompanyUpdateRequest true "公司信息和子记录"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [put]
func (c *CompanyController) UpdateCompany() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrCompanyNotFound, nil)
		return
	}

	var req CompanyUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"about": req.About,
	}

	companyService := c.Container.GetService("company").(services.InterfaceCompanyService)
	company, err := companyService.UpdateCompany(uint(id), updates, buildSubRecordSets(req.PhoneNumbers, req.EmailAddresses, req.WebSites, req.StreetAddresses))
	if err != nil {
		if err.Error() == "公司不存在" {
			response.FailWithMessage(c.Ctx, code.ErrCompanyNotFound, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	// 联系人列表中展示公司名称，一并失效
	middleware.PurgeCacheByPrefix("/api/companies")
	middleware.PurgeCacheByPrefix("/api/people")
	c.Ctx.Header("Location", company.AbsoluteURL())
	response.SuccessWithMessage(c.Ctx, "公司已更新", gin.H{"object": company})
}

// 5. DeleteCompany 删除公司
// @Summary 删除公司
// @Description 确认字段为"Yes"时删除公司并级联删除子记录；其他值不删除并指回详情页；需要 contacts.delete_company 权限
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "公司ID"
// @Param request body DeleteConfirmRequest true "删除确认"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [delete]
func (c *CompanyController) DeleteCompany() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c.Ctx, code.ErrCompanyNotFound, nil)
		return
	}

	companyService := c.Container.GetService("company").(services.InterfaceCompanyService)
	company, err := companyService.GetCompanyByID(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCompanyNotFound, err.Error(), nil)
		return
	}

	var req DeleteConfirmRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c.Ctx, err)
		return
	}

	// 只有确认值为"Yes"才执行删除
	if req.Confirm != "Yes" {
		c.Ctx.Header("Location", company.AbsoluteURL())
		response.Success(c.Ctx, gin.H{"deleted": false})
		return
	}

	if err := companyService.DeleteCompany(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除公司失败: "+err.Error(), nil)
		return
	}

	middleware.PurgeCacheByPrefix("/api/companies")
	middleware.PurgeCacheByPrefix("/api/people")
	c.Ctx.Header("Location", "/api/companies")
	c.Ctx.JSON(http.StatusOK, response.Response{
		Code:    code.ErrSuccess,
		Message: "公司已删除",
		Data:    gin.H{"deleted": true},
	})
}

// buildSubRecordSets 将提交的子记录输入转换为服务层的集合
// 请求中省略（nil）的组在集合中同样为nil，表示保持原样
func buildSubRecordSets(phones *[]PhoneNumberInput, emails *[]EmailAddressInput, sites *[]WebSiteInput, addresses *[]StreetAddressInput) *services.SubRecordSets {
	sets := &services.SubRecordSets{}

	if phones != nil {
		converted := make([]models.PhoneNumber, 0, len(*phones))
		for _, item := range *phones {
			converted = append(converted, models.PhoneNumber{
				ID:         item.ID,
				LocationID: item.LocationID,
				Number:     item.Number,
			})
		}
		sets.PhoneNumbers = &converted
	}
	if emails != nil {
		converted := make([]models.EmailAddress, 0, len(*emails))
		for _, item := range *emails {
			converted = append(converted, models.EmailAddress{
				ID:         item.ID,
				LocationID: item.LocationID,
				Address:    item.Address,
			})
		}
		sets.EmailAddresses = &converted
	}
	if sites != nil {
		converted := make([]models.WebSite, 0, len(*sites))
		for _, item := range *sites {
			converted = append(converted, models.WebSite{
				ID:         item.ID,
				LocationID: item.LocationID,
				URL:        item.URL,
			})
		}
		sets.WebSites = &converted
	}
	if addresses != nil {
		converted := make([]models.StreetAddress, 0, len(*addresses))
		for _, item := range *addresses {
			converted = append(converted, models.StreetAddress{
				ID:         item.ID,
				LocationID: item.LocationID,
				Street:     item.Street,
				City:       item.City,
				Province:   item.Province,
				PostalCode: item.PostalCode,
				Country:    item.Country,
			})
		}
		sets.StreetAddresses = &converted
	}

	return sets
}
