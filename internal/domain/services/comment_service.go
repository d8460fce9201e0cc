package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
)

// InterfaceCommentService 定义评论服务接口
type InterfaceCommentService interface {
	GetComments(ownerType string, ownerID uint) ([]models.Comment, error)
	CreateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// CommentService 提供评论相关的服务
type CommentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCommentService 创建一个新的评论服务
func NewCommentService(db *gorm.DB, cfg *config.Config) InterfaceCommentService {
	return &CommentService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetComments 获取所属对象的全部评论
func (s *CommentService) GetComments(ownerType string, ownerID uint) ([]models.Comment, error) {
	if err := s.checkOwnerExists(ownerType, ownerID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.DB.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("submitted_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// 2. CreateComment 为所属对象添加评论
func (s *CommentService) CreateComment(comment *models.Comment) error {
	if err := s.checkOwnerExists(comment.OwnerType, comment.OwnerID); err != nil {
		return err
	}

	return s.DB.Create(comment).Error
}

// 3. DeleteComment 删除评论
func (s *CommentService) DeleteComment(id uint) error {
	var comment models.Comment
	if err := s.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("评论不存在")
		}
		return err
	}

	return s.DB.Delete(&comment).Error
}

// checkOwnerExists 校验多态引用指向的记录存在
func (s *CommentService) checkOwnerExists(ownerType string, ownerID uint) error {
	model, ok := models.OwnerModel(ownerType)
	if !ok {
		return errors.New("所属对象不存在")
	}

	var count int64
	if err := s.DB.Model(model).Where("id = ?", ownerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("所属对象不存在")
	}
	return nil
}
