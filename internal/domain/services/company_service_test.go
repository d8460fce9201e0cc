package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-http-service/internal/domain/models"
)

func TestCreateCompanyGeneratesSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme Widget Co"}
	require.NoError(t, svc.CreateCompany(company))

	assert.NotZero(t, company.ID)
	assert.Equal(t, "acme-widget-co", company.Slug)
}

func TestCreateCompanyRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	require.NoError(t, svc.CreateCompany(&models.Company{Name: "Acme"}))

	err := svc.CreateCompany(&models.Company{Name: "Acme"})
	require.Error(t, err)
	assert.Equal(t, "公司已存在", err.Error())
}

func TestGetAllCompaniesOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	for _, name := range []string{"Zenith", "Acme", "Midway"} {
		require.NoError(t, svc.CreateCompany(&models.Company{Name: name}))
	}

	companies, p, err := svc.GetAllCompanies(1)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.Equal(t, "Midway", companies[1].Name)
	assert.Equal(t, "Zenith", companies[2].Name)
	assert.Equal(t, 1, p.NumPages)
}

func TestGetAllCompaniesOutOfRangePageFallsBackToLastPage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	for i := 0; i < 25; i++ {
		require.NoError(t, svc.CreateCompany(&models.Company{Name: fmt.Sprintf("Company %02d", i)}))
	}

	companies, p, err := svc.GetAllCompanies(99)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 2, p.NumPages)
	assert.Len(t, companies, 5)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)
	assert.Equal(t, 21, p.StartIndex)
	assert.Equal(t, 25, p.EndIndex)
}

func TestGetCompanyByIDPreloadsSubRecords(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme"}
	require.NoError(t, svc.CreateCompany(company))

	require.NoError(t, db.Create(&models.PhoneNumber{
		OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100",
	}).Error)
	require.NoError(t, db.Create(&models.Comment{
		OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Author: "admin", Body: "called them",
	}).Error)

	got, err := svc.GetCompanyByID(company.ID)
	require.NoError(t, err)
	assert.Len(t, got.PhoneNumbers, 1)
	assert.Len(t, got.Comments, 1)
}

func TestGetCompanyByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	_, err := svc.GetCompanyByID(999)
	require.Error(t, err)
	assert.Equal(t, "公司不存在", err.Error())
}

func TestUpdateCompanyReconcilesSubRecordSets(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme"}
	require.NoError(t, svc.CreateCompany(company))

	kept := models.PhoneNumber{OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100"}
	dropped := models.PhoneNumber{OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0199"}
	require.NoError(t, db.Create(&kept).Error)
	require.NoError(t, db.Create(&dropped).Error)

	// 保留一条（带ID修改内容），省略一条（删除），新增一条
	sets := &SubRecordSets{
		PhoneNumbers: &[]models.PhoneNumber{
			{ID: kept.ID, Number: "+1 555 0101"},
			{Number: "+1 555 0200"},
		},
	}

	updated, err := svc.UpdateCompany(company.ID, map[string]interface{}{"name": "Acme", "about": "updated"}, sets)
	require.NoError(t, err)
	require.Len(t, updated.PhoneNumbers, 2)

	numbers := []string{updated.PhoneNumbers[0].Number, updated.PhoneNumbers[1].Number}
	assert.Contains(t, numbers, "+1 555 0101")
	assert.Contains(t, numbers, "+1 555 0200")
	assert.NotContains(t, numbers, "+1 555 0199")

	var count int64
	db.Model(&models.PhoneNumber{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestUpdateCompanyRejectsForeignSubRecordID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	alpha := &models.Company{Name: "Alpha"}
	beta := &models.Company{Name: "Beta"}
	require.NoError(t, svc.CreateCompany(alpha))
	require.NoError(t, svc.CreateCompany(beta))

	phone := models.PhoneNumber{OwnerID: alpha.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100"}
	require.NoError(t, db.Create(&phone).Error)

	// 用Alpha的电话ID更新Beta必须整体失败，不能把记录改挂到Beta名下
	sets := &SubRecordSets{
		PhoneNumbers: &[]models.PhoneNumber{{ID: phone.ID, Number: "+1 555 0222"}},
	}
	_, err := svc.UpdateCompany(beta.ID, map[string]interface{}{"name": "Beta", "about": ""}, sets)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubRecordNotOwned)

	var got models.PhoneNumber
	require.NoError(t, db.First(&got, phone.ID).Error)
	assert.Equal(t, alpha.ID, got.OwnerID)
	assert.Equal(t, "+1 555 0100", got.Number)
}

func TestUpdateCompanyRejectsUnknownSubRecordID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme"}
	require.NoError(t, svc.CreateCompany(company))

	// 客户端编造的ID不能借Save的建新分支落库
	sets := &SubRecordSets{
		PhoneNumbers: &[]models.PhoneNumber{{ID: 999, Number: "+1 555 0100"}},
	}
	_, err := svc.UpdateCompany(company.ID, map[string]interface{}{"name": "Acme", "about": ""}, sets)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubRecordNotOwned)

	var count int64
	db.Model(&models.PhoneNumber{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateCompanyOmittedSetsStayUntouched(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme"}
	require.NoError(t, svc.CreateCompany(company))

	phone := models.PhoneNumber{OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100"}
	require.NoError(t, db.Create(&phone).Error)

	// 未提交的组保持不变，提交空数组的组被清空
	sets := &SubRecordSets{
		EmailAddresses: &[]models.EmailAddress{},
	}
	updated, err := svc.UpdateCompany(company.ID, map[string]interface{}{"name": "Acme", "about": "still here"}, sets)
	require.NoError(t, err)
	assert.Len(t, updated.PhoneNumbers, 1)
	assert.Empty(t, updated.EmailAddresses)
}

func TestUpdateCompanyFailureLeavesRecordsUntouched(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme", About: "original"}
	require.NoError(t, svc.CreateCompany(company))

	phone := models.PhoneNumber{OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100"}
	require.NoError(t, db.Create(&phone).Error)

	// 无效的列名使事务失败，子记录集合不应被应用
	sets := &SubRecordSets{PhoneNumbers: &[]models.PhoneNumber{}}
	_, err := svc.UpdateCompany(company.ID, map[string]interface{}{"no_such_column": "x"}, sets)
	require.Error(t, err)

	got, err := svc.GetCompanyByID(company.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.About)
	assert.Len(t, got.PhoneNumbers, 1)
}

func TestUpdateCompanyRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	require.NoError(t, svc.CreateCompany(&models.Company{Name: "Acme"}))
	other := &models.Company{Name: "Midway"}
	require.NoError(t, svc.CreateCompany(other))

	_, err := svc.UpdateCompany(other.ID, map[string]interface{}{"name": "Acme"}, nil)
	require.Error(t, err)
	assert.Equal(t, "公司已存在", err.Error())
}

func TestDeleteCompanyCascadesAndUnlinksPeople(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db, testConfig(), nil)

	company := &models.Company{Name: "Acme"}
	require.NoError(t, svc.CreateCompany(company))

	person := models.Person{FirstName: "Jane", LastName: "Doe", CompanyID: &company.ID}
	require.NoError(t, db.Create(&person).Error)
	require.NoError(t, db.Create(&models.PhoneNumber{
		OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100",
	}).Error)
	require.NoError(t, db.Create(&models.Comment{
		OwnerID: company.ID, OwnerType: models.OwnerTypeCompany, Body: "note",
	}).Error)

	require.NoError(t, svc.DeleteCompany(company.ID))

	_, err := svc.GetCompanyByID(company.ID)
	assert.Error(t, err)

	var phoneCount, commentCount int64
	db.Model(&models.PhoneNumber{}).Where("owner_type = ? AND owner_id = ?", models.OwnerTypeCompany, company.ID).Count(&phoneCount)
	db.Model(&models.Comment{}).Where("owner_type = ? AND owner_id = ?", models.OwnerTypeCompany, company.ID).Count(&commentCount)
	assert.Zero(t, phoneCount)
	assert.Zero(t, commentCount)

	// 联系人保留，但与公司解除关联
	var got models.Person
	require.NoError(t, db.First(&got, person.ID).Error)
	assert.Nil(t, got.CompanyID)
}
