package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
)

// InterfaceLocationService 定义位置类型服务接口
type InterfaceLocationService interface {
	GetAllLocations(page int) ([]models.Location, models.Page, error)
	GetLocationByID(id uint) (*models.Location, error)
	GetPhoneLocations() ([]models.Location, error)
	GetStreetAddressLocations() ([]models.Location, error)
	CreateLocation(location *models.Location) error
	UpdateLocation(id uint, updates map[string]interface{}) (*models.Location, error)
	DeleteLocation(id uint) error
}

// LocationService 提供位置类型相关的服务
type LocationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewLocationService 创建一个新的位置类型服务
func NewLocationService(db *gorm.DB, cfg *config.Config) InterfaceLocationService {
	return &LocationService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllLocations 获取位置类型列表，按权重和名称排列
func (s *LocationService) GetAllLocations(page int) ([]models.Location, models.Page, error) {
	var total int64
	if err := s.DB.Model(&models.Location{}).Count(&total).Error; err != nil {
		return nil, models.Page{}, err
	}

	p := models.NewPage(total, page, models.DefaultPageSize)

	var locations []models.Location
	if err := s.DB.Order("weight, name").Limit(p.PageSize).Offset(p.Offset()).Find(&locations).Error; err != nil {
		return nil, models.Page{}, err
	}

	return locations, p, nil
}

// 2. GetLocationByID 根据ID获取位置类型
func (s *LocationService) GetLocationByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := s.DB.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("位置类型不存在")
		}
		return nil, err
	}
	return &location, nil
}

// 3. GetPhoneLocations 获取可用于电话号码的位置类型
func (s *LocationService) GetPhoneLocations() ([]models.Location, error) {
	var locations []models.Location
	if err := s.DB.Where("is_phone = ?", true).Order("weight, name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// 4. GetStreetAddressLocations 获取可用于街道地址的位置类型
func (s *LocationService) GetStreetAddressLocations() ([]models.Location, error) {
	var locations []models.Location
	if err := s.DB.Where("is_street_address = ?", true).Order("weight, name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// 5. CreateLocation 创建新位置类型
func (s *LocationService) CreateLocation(location *models.Location) error {
	return s.DB.Create(location).Error
}

// 6. UpdateLocation 更新位置类型信息
func (s *LocationService) UpdateLocation(id uint, updates map[string]interface{}) (*models.Location, error) {
	if _, err := s.GetLocationByID(id); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Location{ID: id}).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetLocationByID(id)
}

// 7. DeleteLocation 删除位置类型
// 引用该类型的子记录不随之删除，只解除分类
func (s *LocationService) DeleteLocation(id uint) error {
	location, err := s.GetLocationByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 解除子记录对该位置类型的引用
		owned := []interface{}{
			&models.PhoneNumber{},
			&models.EmailAddress{},
			&models.WebSite{},
			&models.StreetAddress{},
		}
		for _, model := range owned {
			if err := tx.Model(model).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(location).Error
	})
}
