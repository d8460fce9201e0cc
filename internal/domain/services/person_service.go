package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
)

// InterfacePersonService 定义联系人服务接口
type InterfacePersonService interface {
	GetAllPeople(page int, query string, companyID *uint) ([]models.Person, models.Page, error)
	GetPersonByID(id uint) (*models.Person, error)
	CreatePerson(person *models.Person) error
	UpdatePerson(id uint, updates map[string]interface{}, sets *SubRecordSets) (*models.Person, error)
	DeletePerson(id uint) error
}

// PersonService 提供联系人相关的服务
type PersonService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPersonService 创建一个新的联系人服务
func NewPersonService(db *gorm.DB, cfg *config.Config) InterfacePersonService {
	return &PersonService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllPeople 获取联系人列表，支持前缀搜索和按公司过滤
// 页码无效或超出范围时回退到最后一页
func (s *PersonService) GetAllPeople(page int, query string, companyID *uint) ([]models.Person, models.Page, error) {
	db := s.DB.Model(&models.Person{})

	// 前缀搜索：姓、名、公司名
	if query != "" {
		prefix := query + "%"
		db = db.Joins("LEFT JOIN companies ON companies.id = people.company_id").
			Where("people.first_name LIKE ? OR people.last_name LIKE ? OR companies.name LIKE ?", prefix, prefix, prefix)
	}
	if companyID != nil {
		db = db.Where("people.company_id = ?", *companyID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, models.Page{}, err
	}

	p := models.NewPage(total, page, models.DefaultPageSize)

	var people []models.Person
	err := db.Preload("Company").
		Order("people.last_name, people.first_name").
		Limit(p.PageSize).Offset(p.Offset()).
		Find(&people).Error
	if err != nil {
		return nil, models.Page{}, err
	}

	return people, p, nil
}

// 2. GetPersonByID 根据ID获取联系人，预加载子记录和评论
func (s *PersonService) GetPersonByID(id uint) (*models.Person, error) {
	var person models.Person
	err := s.DB.
		Preload("Company").
		Preload("PhoneNumbers.Location").
		Preload("EmailAddresses.Location").
		Preload("WebSites.Location").
		Preload("StreetAddresses.Location").
		Preload("Comments").
		First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("联系人不存在")
		}
		return nil, err
	}
	return &person, nil
}

// 3. CreatePerson 创建新联系人
func (s *PersonService) CreatePerson(person *models.Person) error {
	// 校验所属公司存在
	if person.CompanyID != nil {
		var count int64
		if err := s.DB.Model(&models.Company{}).Where("id = ?", *person.CompanyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("公司不存在")
		}
	}

	return s.DB.Create(person).Error
}

// 4. UpdatePerson 更新联系人及其四组子记录
// 主记录和子记录集合在同一事务中保存
func (s *PersonService) UpdatePerson(id uint, updates map[string]interface{}, sets *SubRecordSets) (*models.Person, error) {
	if _, err := s.GetPersonByID(id); err != nil {
		return nil, err
	}

	// 校验所属公司存在，company_id为空指针表示解除关联
	if raw, ok := updates["company_id"]; ok {
		if companyID, ok := raw.(*uint); ok && companyID != nil {
			var count int64
			if err := s.DB.Model(&models.Company{}).Where("id = ?", *companyID).Count(&count).Error; err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, errors.New("公司不存在")
			}
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Person{ID: id}).Updates(updates).Error; err != nil {
				return err
			}
		}
		return reconcileSubRecordSets(tx, models.OwnerTypePerson, id, sets)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPersonByID(id)
}

// 5. DeletePerson 删除联系人并级联删除其子记录和评论
func (s *PersonService) DeletePerson(id uint) error {
	person, err := s.GetPersonByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteOwnedRecords(tx, models.OwnerTypePerson, id); err != nil {
			return err
		}
		return tx.Delete(person).Error
	})
}
