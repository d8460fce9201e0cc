package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
	"contacts-http-service/utils"
)

// InterfaceUserService 定义用户服务接口
type InterfaceUserService interface {
	GetAllUsers(page, pageSize int) ([]models.User, int64, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id uint) error
	Authenticate(username, password string) (*models.User, error)
}

// UserService 提供用户相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllUsers 获取所有用户，支持分页
func (s *UserService) GetAllUsers(page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// 2. GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// 3. CreateUser 创建新用户
func (s *UserService) CreateUser(user *models.User) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	// 密码哈希由BeforeCreate钩子完成
	return s.DB.Create(user).Error
}

// 4. UpdateUser 更新用户信息
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新用户名，需要检查唯一性
	if username, ok := updates["username"].(string); ok && username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("用户名已被其他用户使用")
		}
	}

	// 如果更新密码，需要进行哈希处理
	if password, ok := updates["password"].(string); ok {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, errors.New("密码加密失败")
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的用户信息
	return s.GetUserByID(id)
}

// 5. DeleteUser 删除用户
func (s *UserService) DeleteUser(id uint) error {
	// 确保系统中至少有一个管理员
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return errors.New("系统必须至少有一个管理员，无法删除最后一个管理员")
		}
	}

	return s.DB.Delete(user).Error
}

// 6. Authenticate 校验用户名和密码
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户名或密码错误")
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errors.New("用户名或密码错误")
	}

	return &user, nil
}
