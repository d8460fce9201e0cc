package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
)

// InterfaceGroupService 定义分组服务接口
type InterfaceGroupService interface {
	GetAllGroups(page int) ([]models.Group, models.Page, error)
	GetGroupByID(id uint) (*models.Group, error)
	CreateGroup(group *models.Group) error
	UpdateGroup(id uint, updates map[string]interface{}) (*models.Group, error)
	DeleteGroup(id uint) error
}

// GroupService 提供分组相关的服务
type GroupService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewGroupService 创建一个新的分组服务
func NewGroupService(db *gorm.DB, cfg *config.Config) InterfaceGroupService {
	return &GroupService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllGroups 获取分组列表，按修改时间倒序排列
func (s *GroupService) GetAllGroups(page int) ([]models.Group, models.Page, error) {
	var total int64
	if err := s.DB.Model(&models.Group{}).Count(&total).Error; err != nil {
		return nil, models.Page{}, err
	}

	p := models.NewPage(total, page, models.DefaultPageSize)

	var groups []models.Group
	if err := s.DB.Order("updated_at DESC, name").Limit(p.PageSize).Offset(p.Offset()).Find(&groups).Error; err != nil {
		return nil, models.Page{}, err
	}

	return groups, p, nil
}

// 2. GetGroupByID 根据ID获取分组
func (s *GroupService) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.DB.Preload("Comments").First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("分组不存在")
		}
		return nil, err
	}
	return &group, nil
}

// 3. CreateGroup 创建新分组
func (s *GroupService) CreateGroup(group *models.Group) error {
	return s.DB.Create(group).Error
}

// 4. UpdateGroup 更新分组信息
func (s *GroupService) UpdateGroup(id uint, updates map[string]interface{}) (*models.Group, error) {
	if _, err := s.GetGroupByID(id); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Group{ID: id}).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetGroupByID(id)
}

// 5. DeleteGroup 删除分组并级联删除其评论
func (s *GroupService) DeleteGroup(id uint) error {
	group, err := s.GetGroupByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteOwnedRecords(tx, models.OwnerTypeGroup, id); err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
}
