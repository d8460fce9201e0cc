package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-http-service/internal/domain/models"
)

func TestGetAllGroupsOrderedByLastModified(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGroupService(db, testConfig())

	oldGroup := models.Group{Name: "Suppliers"}
	newGroup := models.Group{Name: "Customers"}
	require.NoError(t, svc.CreateGroup(&oldGroup))
	require.NoError(t, svc.CreateGroup(&newGroup))

	// 明确拉开修改时间，保证排序可断言
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Group{ID: oldGroup.ID}).Update("updated_at", past).Error)

	groups, _, err := svc.GetAllGroups(1)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Customers", groups[0].Name)
	assert.Equal(t, "Suppliers", groups[1].Name)
}

func TestUpdateGroup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGroupService(db, testConfig())

	group := models.Group{Name: "Suppliers", About: "old"}
	require.NoError(t, svc.CreateGroup(&group))

	updated, err := svc.UpdateGroup(group.ID, map[string]interface{}{"about": "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.About)
	assert.Equal(t, "Suppliers", updated.Name)
}

func TestUpdateGroupNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGroupService(db, testConfig())

	_, err := svc.UpdateGroup(999, map[string]interface{}{"about": "x"})
	require.Error(t, err)
	assert.Equal(t, "分组不存在", err.Error())
}

func TestDeleteGroupCascadesComments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGroupService(db, testConfig())

	group := models.Group{Name: "Suppliers"}
	require.NoError(t, svc.CreateGroup(&group))
	require.NoError(t, db.Create(&models.Comment{
		OwnerID: group.ID, OwnerType: models.OwnerTypeGroup, Body: "quarterly review",
	}).Error)

	require.NoError(t, svc.DeleteGroup(group.ID))

	var count int64
	db.Model(&models.Comment{}).Where("owner_type = ? AND owner_id = ?", models.OwnerTypeGroup, group.ID).Count(&count)
	assert.Zero(t, count)
}
