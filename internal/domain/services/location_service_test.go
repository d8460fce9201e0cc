package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-http-service/internal/domain/models"
)

func seedLocations(t *testing.T, svc InterfaceLocationService) (home, work, office models.Location) {
	t.Helper()

	home = models.Location{Name: "Home", Weight: 1, IsPhone: true, IsStreetAddress: true}
	work = models.Location{Name: "Work", Weight: 2, IsPhone: true}
	office = models.Location{Name: "Branch Office", Weight: 3, IsStreetAddress: true}

	require.NoError(t, svc.CreateLocation(&home))
	require.NoError(t, svc.CreateLocation(&work))
	require.NoError(t, svc.CreateLocation(&office))
	return home, work, office
}

func TestGetAllLocationsOrderedByWeightThenName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db, testConfig())

	require.NoError(t, svc.CreateLocation(&models.Location{Name: "Beta", Weight: 2}))
	require.NoError(t, svc.CreateLocation(&models.Location{Name: "Alpha", Weight: 2}))
	require.NoError(t, svc.CreateLocation(&models.Location{Name: "Zulu", Weight: 1}))

	locations, _, err := svc.GetAllLocations(1)
	require.NoError(t, err)
	require.Len(t, locations, 3)
	assert.Equal(t, "Zulu", locations[0].Name)
	assert.Equal(t, "Alpha", locations[1].Name)
	assert.Equal(t, "Beta", locations[2].Name)
}

func TestGetPhoneLocations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db, testConfig())
	home, work, _ := seedLocations(t, svc)

	locations, err := svc.GetPhoneLocations()
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, home.ID, locations[0].ID)
	assert.Equal(t, work.ID, locations[1].ID)
}

func TestGetStreetAddressLocations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db, testConfig())
	home, _, office := seedLocations(t, svc)

	locations, err := svc.GetStreetAddressLocations()
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, home.ID, locations[0].ID)
	assert.Equal(t, office.ID, locations[1].ID)
}

func TestDeleteLocationUnlinksSubRecords(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db, testConfig())

	location := models.Location{Name: "Work", IsPhone: true}
	require.NoError(t, svc.CreateLocation(&location))

	phone := models.PhoneNumber{OwnerID: 1, OwnerType: models.OwnerTypeCompany, LocationID: &location.ID, Number: "+1 555 0100"}
	require.NoError(t, db.Create(&phone).Error)

	require.NoError(t, svc.DeleteLocation(location.ID))

	// 电话记录保留，但不再引用已删除的位置类型
	var got models.PhoneNumber
	require.NoError(t, db.First(&got, phone.ID).Error)
	assert.Nil(t, got.LocationID)
}
