package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-http-service/internal/domain/models"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := models.User{Username: "editor", Password: "secret123", Role: models.RoleStaff}
	require.NoError(t, svc.CreateUser(&user))

	assert.NotEqual(t, "secret123", user.Password)

	got, err := svc.Authenticate("editor", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	require.NoError(t, svc.CreateUser(&models.User{Username: "editor", Password: "secret123"}))

	err := svc.CreateUser(&models.User{Username: "editor", Password: "other456"})
	require.Error(t, err)
	assert.Equal(t, "用户名已存在", err.Error())
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	require.NoError(t, svc.CreateUser(&models.User{Username: "editor", Password: "secret123"}))

	_, err := svc.Authenticate("editor", "wrong")
	require.Error(t, err)
	assert.Equal(t, "用户名或密码错误", err.Error())

	_, err = svc.Authenticate("nobody", "secret123")
	require.Error(t, err)
	assert.Equal(t, "用户名或密码错误", err.Error())
}

func TestDeleteUserProtectsLastAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := models.User{Username: "admin", Password: "admin123", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateUser(&admin))

	err := svc.DeleteUser(admin.ID)
	require.Error(t, err)

	// 有第二个管理员后即可删除
	second := models.User{Username: "admin2", Password: "admin123", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateUser(&second))
	require.NoError(t, svc.DeleteUser(admin.ID))
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := models.User{Username: "editor", Password: "secret123"}
	require.NoError(t, svc.CreateUser(&user))

	_, err := svc.UpdateUser(user.ID, map[string]interface{}{"password": "brandnew1"})
	require.NoError(t, err)

	_, err = svc.Authenticate("editor", "brandnew1")
	require.NoError(t, err)
	_, err = svc.Authenticate("editor", "secret123")
	require.Error(t, err)
}

func TestUserHasPerm(t *testing.T) {
	admin := models.User{Role: models.RoleAdmin}
	assert.True(t, admin.HasPerm("contacts.add_company"))

	staff := models.User{Role: models.RoleStaff, Permissions: []string{"contacts.add_company"}}
	assert.True(t, staff.HasPerm("contacts.add_company"))
	assert.False(t, staff.HasPerm("contacts.delete_company"))
}
