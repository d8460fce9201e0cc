package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
	"contacts-http-service/pkg/logger"
)

// InterfaceCompanyService 定义公司服务接口
type InterfaceCompanyService interface {
	GetAllCompanies(page int) ([]models.Company, models.Page, error)
	GetCompanyByID(id uint) (*models.Company, error)
	CreateCompany(company *models.Company) error
	UpdateCompany(id uint, updates map[string]interface{}, sets *SubRecordSets) (*models.Company, error)
	DeleteCompany(id uint) error
}

// CompanyService 提供公司相关的服务
type CompanyService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  *RedisService // 可以为空，为空时不使用缓存
}

// companyListPage 列表页缓存条目
type companyListPage struct {
	Companies []models.Company `json:"companies"`
	Page      models.Page      `json:"page"`
}

// NewCompanyService 创建一个新的公司服务
func NewCompanyService(db *gorm.DB, cfg *config.Config, redis *RedisService) InterfaceCompanyService {
	return &CompanyService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// 1. GetAllCompanies 获取公司列表，每页20条
// 页码无效或超出范围时回退到最后一页，不报错
func (s *CompanyService) GetAllCompanies(page int) ([]models.Company, models.Page, error) {
	// 先查缓存
	if s.Redis != nil {
		var cached companyListPage
		if err := s.Redis.GetListPage(models.OwnerTypeCompany, page, &cached); err == nil {
			return cached.Companies, cached.Page, nil
		}
	}

	var total int64
	if err := s.DB.Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, models.Page{}, err
	}

	// 计算分页信息，无效页码回退到最后一页
	p := models.NewPage(total, page, models.DefaultPageSize)

	var companies []models.Company
	if err := s.DB.Order("name").Limit(p.PageSize).Offset(p.Offset()).Find(&companies).Error; err != nil {
		return nil, models.Page{}, err
	}

	if s.Redis != nil {
		if err := s.Redis.CacheListPage(models.OwnerTypeCompany, page, companyListPage{Companies: companies, Page: p}); err != nil {
			logger.Warning("缓存公司列表页失败: %v", err)
		}
	}

	return companies, p, nil
}

// 2. GetCompanyByID 根据ID获取公司，预加载子记录和评论
func (s *CompanyService) GetCompanyByID(id uint) (*models.Company, error) {
	var company models.Company
	err := s.DB.
		Preload("PhoneNumbers.Location").
		Preload("EmailAddresses.Location").
		Preload("WebSites.Location").
		Preload("StreetAddresses.Location").
		Preload("Comments").
		First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("公司不存在")
		}
		return nil, err
	}
	return &company, nil
}

// 3. CreateCompany 创建新公司
func (s *CompanyService) CreateCompany(company *models.Company) error {
	// 验证公司名称唯一性
	var count int64
	if err := s.DB.Model(&models.Company{}).Where("name = ?", company.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("公司已存在")
	}

	if err := s.DB.Create(company).Error; err != nil {
		return err
	}

	s.invalidateListCache()
	return nil
}

// 4. UpdateCompany 更新公司及其四组子记录
// 主记录和子记录集合在同一事务中保存，任何一步失败则全部回滚
func (s *CompanyService) UpdateCompany(id uint, updates map[string]interface{}, sets *SubRecordSets) (*models.Company, error) {
	company, err := s.GetCompanyByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新名称，需要检查唯一性
	if name, ok := updates["name"].(string); ok && name != company.Name {
		var count int64
		if err := s.DB.Model(&models.Company{}).Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("公司已存在")
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Company{ID: id}).Updates(updates).Error; err != nil {
				return err
			}
		}
		return reconcileSubRecordSets(tx, models.OwnerTypeCompany, id, sets)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListCache()

	// 重新获取更新后的公司信息
	return s.GetCompanyByID(id)
}

// 5. DeleteCompany 删除公司并级联删除其子记录和评论
func (s *CompanyService) DeleteCompany(id uint) error {
	company, err := s.GetCompanyByID(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 解除联系人与公司的关联
		if err := tx.Model(&models.Person{}).Where("company_id = ?", id).Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := deleteOwnedRecords(tx, models.OwnerTypeCompany, id); err != nil {
			return err
		}
		return tx.Delete(company).Error
	})
	if err != nil {
		return err
	}

	s.invalidateListCache()
	return nil
}

// invalidateListCache 公司数据变更后清除列表页缓存
func (s *CompanyService) invalidateListCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.InvalidateList(models.OwnerTypeCompany); err != nil {
		logger.Warning("清除公司列表缓存失败: %v", err)
	}
}
