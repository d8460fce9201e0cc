package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts-http-service/internal/app/admin"
	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/domain/services/container"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

// AdminController 处理管理站点相关的请求
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理站点控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAdminFunc 返回一个处理管理站点请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getSite":
			controller.GetSite()
		case "getEntityList":
			controller.GetEntityList()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetSite 返回全部已注册的管理配置
// @Summary 获取管理站点配置
// @Description 仅限管理员
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/site [get]
func (c *AdminController) GetSite() {
	response.Success(c.Ctx, gin.H{"site": admin.Site()})
}

// 2. GetEntityList 按实体的管理配置返回记录列表
// 排序和搜索遵循注册时声明的Ordering与SearchFields
// @Summary 获取实体管理列表
// @Description 仅限管理员
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param entity path string true "实体名（company/person/group/location）"
// @Param q query string false "搜索关键字"
// @Param page query int false "页码，默认为1"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/{entity} [get]
func (c *AdminController) GetEntityList() {
	entity := c.Ctx.Param("entity")
	modelAdmin, ok := admin.Get(entity)
	if !ok {
		response.NotFound(c.Ctx, "实体未注册")
		return
	}

	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	query := strings.TrimSpace(c.Ctx.Query("q"))

	db := c.Container.GetDB()
	tx, objects := adminEntityQuery(db, entity)
	if tx == nil {
		response.NotFound(c.Ctx, "实体未注册")
		return
	}

	tx = applySearchFields(tx, modelAdmin.SearchFields, query)
	tx = applyOrdering(tx, modelAdmin.Ordering)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取管理列表失败: "+err.Error(), nil)
		return
	}

	p := models.NewPage(total, page, models.DefaultPageSize)
	if err := tx.Limit(p.PageSize).Offset(p.Offset()).Find(objects).Error; err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取管理列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"entity":      entity,
		"config":      modelAdmin,
		"object_list": objects,
		"page":        p.Number,
		"num_pages":   p.NumPages,
		"total":       p.Total,
	})
}

// adminEntityQuery 为实体准备查询和结果容器
func adminEntityQuery(db *gorm.DB, entity string) (*gorm.DB, interface{}) {
	switch entity {
	case models.OwnerTypeCompany:
		return db.Model(&models.Company{}), &[]models.Company{}
	case models.OwnerTypePerson:
		// 按公司名搜索和展示需要联结公司表
		tx := db.Model(&models.Person{}).
			Joins("LEFT JOIN companies ON companies.id = people.company_id").
			Preload("Company")
		return tx, &[]models.Person{}
	case models.OwnerTypeGroup:
		return db.Model(&models.Group{}), &[]models.Group{}
	case models.OwnerTypeLocation:
		return db.Model(&models.Location{}), &[]models.Location{}
	default:
		return nil, nil
	}
}

// applySearchFields 按声明的搜索字段过滤，前缀"^"表示按前缀匹配
func applySearchFields(tx *gorm.DB, searchFields []string, query string) *gorm.DB {
	if query == "" || len(searchFields) == 0 {
		return tx
	}

	var clauses []string
	var args []interface{}
	for _, field := range searchFields {
		prefix := strings.HasPrefix(field, "^")
		column := strings.TrimPrefix(field, "^")
		// "company.name" 指向联结表中的列
		column = strings.ReplaceAll(column, "company.", "companies.")

		if prefix {
			clauses = append(clauses, column+" LIKE ?")
			args = append(args, query+"%")
		} else {
			clauses = append(clauses, column+" LIKE ?")
			args = append(args, "%"+query+"%")
		}
	}

	return tx.Where(strings.Join(clauses, " OR "), args...)
}

// applyOrdering 按声明的排序字段排列，前缀"-"表示倒序
func applyOrdering(tx *gorm.DB, ordering []string) *gorm.DB {
	for _, field := range ordering {
		if strings.HasPrefix(field, "-") {
			tx = tx.Order(strings.TrimPrefix(field, "-") + " DESC")
		} else {
			tx = tx.Order(field)
		}
	}
	return tx
}
