package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-http-service/internal/domain/models"
)

func TestGetAllPeopleOrderedByLastNameThenFirstName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	for _, p := range []models.Person{
		{FirstName: "Walter", LastName: "Sobchak"},
		{FirstName: "Jeffrey", LastName: "Lebowski"},
		{FirstName: "Maude", LastName: "Lebowski"},
	} {
		person := p
		require.NoError(t, svc.CreatePerson(&person))
	}

	people, _, err := svc.GetAllPeople(1, "", nil)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Jeffrey Lebowski", people[0].FullName())
	assert.Equal(t, "Maude Lebowski", people[1].FullName())
	assert.Equal(t, "Walter Sobchak", people[2].FullName())
}

func TestGetAllPeoplePrefixSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	company := models.Company{Name: "Gazette"}
	require.NoError(t, db.Create(&company).Error)

	for _, p := range []models.Person{
		{FirstName: "Jane", LastName: "Smith"},
		{FirstName: "John", LastName: "Jones"},
		{FirstName: "Smitty", LastName: "Werben"},
		{FirstName: "Lois", LastName: "Lane", CompanyID: &company.ID},
	} {
		person := p
		require.NoError(t, svc.CreatePerson(&person))
	}

	// 前缀匹配姓或名
	people, _, err := svc.GetAllPeople(1, "Smi", nil)
	require.NoError(t, err)
	assert.Len(t, people, 2)

	// 中缀不匹配
	people, _, err = svc.GetAllPeople(1, "mith", nil)
	require.NoError(t, err)
	assert.Len(t, people, 0)

	// 前缀匹配公司名
	people, _, err = svc.GetAllPeople(1, "Gaz", nil)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Lois Lane", people[0].FullName())
}

func TestGetAllPeopleFilterByCompany(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	inCompany := models.Person{FirstName: "Jane", LastName: "Doe", CompanyID: &company.ID}
	freelancer := models.Person{FirstName: "John", LastName: "Roe"}
	require.NoError(t, svc.CreatePerson(&inCompany))
	require.NoError(t, svc.CreatePerson(&freelancer))

	people, _, err := svc.GetAllPeople(1, "", &company.ID)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, inCompany.ID, people[0].ID)
	require.NotNil(t, people[0].Company)
	assert.Equal(t, "Acme", people[0].Company.Name)
}

func TestCreatePersonRejectsMissingCompany(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	person := models.Person{FirstName: "Jane", LastName: "Doe", CompanyID: uintPtr(999)}
	err := svc.CreatePerson(&person)
	require.Error(t, err)
	assert.Equal(t, "公司不存在", err.Error())
}

func TestUpdatePersonReconcilesSubRecordSets(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	person := models.Person{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, svc.CreatePerson(&person))

	old := models.EmailAddress{OwnerID: person.ID, OwnerType: models.OwnerTypePerson, Address: "old@example.test"}
	require.NoError(t, db.Create(&old).Error)

	sets := &SubRecordSets{
		EmailAddresses: &[]models.EmailAddress{{Address: "new@example.test"}},
	}
	updated, err := svc.UpdatePerson(person.ID, map[string]interface{}{"first_name": "Janet"}, sets)
	require.NoError(t, err)

	assert.Equal(t, "Janet", updated.FirstName)
	require.Len(t, updated.EmailAddresses, 1)
	assert.Equal(t, "new@example.test", updated.EmailAddresses[0].Address)
}

func TestUpdatePersonClearsCompany(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	person := models.Person{FirstName: "Jane", LastName: "Doe", CompanyID: &company.ID}
	require.NoError(t, svc.CreatePerson(&person))

	updated, err := svc.UpdatePerson(person.ID, map[string]interface{}{"company_id": (*uint)(nil)}, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.CompanyID)
}

func TestDeletePersonCascadesSubRecords(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonService(db, testConfig())

	person := models.Person{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, svc.CreatePerson(&person))

	require.NoError(t, db.Create(&models.WebSite{
		OwnerID: person.ID, OwnerType: models.OwnerTypePerson, URL: "https://janedoe.test",
	}).Error)
	require.NoError(t, db.Create(&models.Comment{
		OwnerID: person.ID, OwnerType: models.OwnerTypePerson, Body: "met at conference",
	}).Error)

	require.NoError(t, svc.DeletePerson(person.ID))

	var siteCount, commentCount int64
	db.Model(&models.WebSite{}).Where("owner_type = ? AND owner_id = ?", models.OwnerTypePerson, person.ID).Count(&siteCount)
	db.Model(&models.Comment{}).Where("owner_type = ? AND owner_id = ?", models.OwnerTypePerson, person.ID).Count(&commentCount)
	assert.Zero(t, siteCount)
	assert.Zero(t, commentCount)
}
