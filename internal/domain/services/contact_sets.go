package services

import (
	"errors"

	"gorm.io/gorm"

	"contacts-http-service/internal/domain/models"
)

// ErrSubRecordNotOwned 提交的子记录ID不存在或属于其他对象
var ErrSubRecordNotOwned = errors.New("子记录不存在或不属于当前对象")

// SubRecordSets 表示一次提交中随主记录一起编辑的四组子记录
// 语义与表单集一致：带ID的项更新，不带ID的项新建，未提交的旧项删除
// 字段为nil表示本次未提交该组，保持原样不动
type SubRecordSets struct {
	PhoneNumbers    *[]models.PhoneNumber
	EmailAddresses  *[]models.EmailAddress
	WebSites        *[]models.WebSite
	StreetAddresses *[]models.StreetAddress
}

// verifyOwnedIDs 校验提交的每个ID都在当前所属对象名下，防止改写其他对象的子记录
func verifyOwnedIDs(tx *gorm.DB, model interface{}, ownerType string, ownerID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).
		Where("id IN ? AND owner_type = ? AND owner_id = ?", ids, ownerType, ownerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrSubRecordNotOwned
	}
	return nil
}

// reconcilePhoneNumbers 将所属对象的电话号码集合调整为提交的集合
func reconcilePhoneNumbers(tx *gorm.DB, ownerType string, ownerID uint, items []models.PhoneNumber) error {
	keep := make([]uint, 0, len(items))
	for i := range items {
		items[i].OwnerType = ownerType
		items[i].OwnerID = ownerID
		if items[i].ID != 0 {
			keep = append(keep, items[i].ID)
		}
	}
	if err := verifyOwnedIDs(tx, &models.PhoneNumber{}, ownerType, ownerID, keep); err != nil {
		return err
	}

	// 删除本次提交中不再出现的旧记录
	query := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Delete(&models.PhoneNumber{}).Error; err != nil {
		return err
	}

	for i := range items {
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// reconcileEmailAddresses 将所属对象的邮箱集合调整为提交的集合
func reconcileEmailAddresses(tx *gorm.DB, ownerType string, ownerID uint, items []models.EmailAddress) error {
	keep := make([]uint, 0, len(items))
	for i := range items {
		items[i].OwnerType = ownerType
		items[i].OwnerID = ownerID
		if items[i].ID != 0 {
			keep = append(keep, items[i].ID)
		}
	}
	if err := verifyOwnedIDs(tx, &models.EmailAddress{}, ownerType, ownerID, keep); err != nil {
		return err
	}

	query := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Delete(&models.EmailAddress{}).Error; err != nil {
		return err
	}

	for i := range items {
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// reconcileWebSites 将所属对象的网站集合调整为提交的集合
func reconcileWebSites(tx *gorm.DB, ownerType string, ownerID uint, items []models.WebSite) error {
	keep := make([]uint, 0, len(items))
	for i := range items {
		items[i].OwnerType = ownerType
		items[i].OwnerID = ownerID
		if items[i].ID != 0 {
			keep = append(keep, items[i].ID)
		}
	}
	if err := verifyOwnedIDs(tx, &models.WebSite{}, ownerType, ownerID, keep); err != nil {
		return err
	}

	query := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Delete(&models.WebSite{}).Error; err != nil {
		return err
	}

	for i := range items {
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// reconcileStreetAddresses 将所属对象的街道地址集合调整为提交的集合
func reconcileStreetAddresses(tx *gorm.DB, ownerType string, ownerID uint, items []models.StreetAddress) error {
	keep := make([]uint, 0, len(items))
	for i := range items {
		items[i].OwnerType = ownerType
		items[i].OwnerID = ownerID
		if items[i].ID != 0 {
			keep = append(keep, items[i].ID)
		}
	}
	if err := verifyOwnedIDs(tx, &models.StreetAddress{}, ownerType, ownerID, keep); err != nil {
		return err
	}

	query := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Delete(&models.StreetAddress{}).Error; err != nil {
		return err
	}

	for i := range items {
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// reconcileSubRecordSets 在同一事务中调整提交的子记录组，未提交的组不动
func reconcileSubRecordSets(tx *gorm.DB, ownerType string, ownerID uint, sets *SubRecordSets) error {
	if sets == nil {
		return nil
	}
	if sets.PhoneNumbers != nil {
		if err := reconcilePhoneNumbers(tx, ownerType, ownerID, *sets.PhoneNumbers); err != nil {
			return err
		}
	}
	if sets.EmailAddresses != nil {
		if err := reconcileEmailAddresses(tx, ownerType, ownerID, *sets.EmailAddresses); err != nil {
			return err
		}
	}
	if sets.WebSites != nil {
		if err := reconcileWebSites(tx, ownerType, ownerID, *sets.WebSites); err != nil {
			return err
		}
	}
	if sets.StreetAddresses != nil {
		return reconcileStreetAddresses(tx, ownerType, ownerID, *sets.StreetAddresses)
	}
	return nil
}

// deleteOwnedRecords 删除所属对象的全部子记录和评论
// 多态引用没有数据库级外键，所以级联删除在应用层完成
func deleteOwnedRecords(tx *gorm.DB, ownerType string, ownerID uint) error {
	owned := []interface{}{
		&models.PhoneNumber{},
		&models.EmailAddress{},
		&models.WebSite{},
		&models.StreetAddress{},
		&models.Comment{},
	}
	for _, model := range owned {
		if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
