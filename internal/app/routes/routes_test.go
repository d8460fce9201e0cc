package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"contacts-http-service/internal/app/middleware"
	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/infrastructure/config"
)

// envelope 统一响应格式
type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Person{},
		&models.Group{},
		&models.Location{},
		&models.PhoneNumber{},
		&models.EmailAddress{},
		&models.WebSite{},
		&models.StreetAddress{},
		&models.Comment{},
	))

	cfg := &config.Config{JWTSecretKey: "test-secret-key"}
	r := SetupRouter(db, cfg, false)

	// 列表缓存是进程级的，避免测试间互相污染
	middleware.PurgeCache()

	return r, db, cfg
}

// tokenFor 为给定角色和权限签发令牌
func tokenFor(t *testing.T, cfg *config.Config, role string, perms ...string) string {
	t.Helper()

	jwtService := services.NewJWTService(cfg)
	token, err := jwtService.GenerateToken(&models.User{ID: 1, Role: role, Permissions: perms})
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "响应体: %s", w.Body.String())
	return env
}

func TestPing(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	assert.Equal(t, "pong", env.Data["message"])
}

func TestLogin(t *testing.T) {
	r, db, _ := setupTestRouter(t)

	require.NoError(t, db.Create(&models.User{
		Username: "admin", Password: "admin123", Role: models.RoleAdmin,
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	assert.NotEmpty(t, env.Data["token"])
	assert.Equal(t, "admin", env.Data["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	r, db, _ := setupTestRouter(t)

	require.NoError(t, db.Create(&models.User{
		Username: "admin", Password: "admin123", Role: models.RoleAdmin,
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCompanyRequiresToken(t *testing.T) {
	r, db, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/companies", "", gin.H{"name": "Acme"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	db.Model(&models.Company{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCompanyRequiresPermission(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	// 没有 add_company 权限的普通用户被拒绝
	token := tokenFor(t, cfg, models.RoleStaff, "contacts.change_company")
	w := doJSON(r, http.MethodPost, "/api/companies", token, gin.H{"name": "Acme"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.Company{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCompanySetsLocationHeader(t *testing.T) {
	r, _, cfg := setupTestRouter(t)

	token := tokenFor(t, cfg, models.RoleStaff, "contacts.add_company")
	w := doJSON(r, http.MethodPost, "/api/companies", token, gin.H{"name": "Acme Widget Co"})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "/api/companies/1/acme-widget-co", w.Header().Get("Location"))

	env := parseEnvelope(t, w)
	assert.Equal(t, "公司已添加", env.Message)
}

func TestCompanyListFreshAfterCreate(t *testing.T) {
	r, _, cfg := setupTestRouter(t)

	// 先读一次，让列表进入缓存
	w := doJSON(r, http.MethodGet, "/api/companies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, float64(0), env.Data["total"])

	token := tokenFor(t, cfg, models.RoleStaff, "contacts.add_company")
	w = doJSON(r, http.MethodPost, "/api/companies", token, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)

	// 写操作失效缓存，新公司立即可见
	w = doJSON(r, http.MethodGet, "/api/companies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = parseEnvelope(t, w)
	assert.Equal(t, float64(1), env.Data["total"])

	list := env.Data["object_list"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].(map[string]interface{})["name"])
}

func TestCompanyDetailNotFound(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/companies/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyDetailBySlug(t *testing.T) {
	r, db, _ := setupTestRouter(t)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	// slug仅用于URL美观，任何尾段都按主键查找
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/companies/%d/anything-here", company.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	object := env.Data["object"].(map[string]interface{})
	assert.Equal(t, "Acme", object["name"])
}

func TestCompanyDeleteConfirmPage(t *testing.T) {
	r, db, _ := setupTestRouter(t)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/companies/%d/delete", company.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	assert.Equal(t, "confirm", env.Data["confirm_field"])
	assert.Equal(t, "Yes", env.Data["confirm_value"])
}

func TestDeleteCompanyOnlyOnYes(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	token := tokenFor(t, cfg, models.RoleStaff, "contacts.delete_company")

	// 确认值不是"Yes"时不删除，并指回详情页
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/companies/%d", company.ID), token, gin.H{"confirm": "No"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, company.AbsoluteURL(), w.Header().Get("Location"))

	var count int64
	db.Model(&models.Company{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// 确认值为"Yes"时删除
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/companies/%d", company.ID), token, gin.H{"confirm": "Yes"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/companies", w.Header().Get("Location"))

	db.Model(&models.Company{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateCompanyWithSubRecords(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	token := tokenFor(t, cfg, models.RoleStaff, "contacts.change_company")
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/companies/%d", company.ID), token, gin.H{
		"name": "Acme",
		"phone_numbers": []gin.H{
			{"number": "+1 555 0100"},
		},
		"email_addresses": []gin.H{
			{"address": "info@acme.test"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, "响应体: %s", w.Body.String())

	var phoneCount, emailCount int64
	db.Model(&models.PhoneNumber{}).Count(&phoneCount)
	db.Model(&models.EmailAddress{}).Count(&emailCount)
	assert.Equal(t, int64(1), phoneCount)
	assert.Equal(t, int64(1), emailCount)
}

func TestUpdateCompanyRejectsOtherCompanysSubRecord(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	alpha := models.Company{Name: "Alpha"}
	beta := models.Company{Name: "Beta"}
	require.NoError(t, db.Create(&alpha).Error)
	require.NoError(t, db.Create(&beta).Error)

	phone := models.PhoneNumber{OwnerID: alpha.ID, OwnerType: models.OwnerTypeCompany, Number: "+1 555 0100"}
	require.NoError(t, db.Create(&phone).Error)

	// 提交别家公司的电话ID必须整体拒绝
	token := tokenFor(t, cfg, models.RoleStaff, "contacts.change_company")
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/companies/%d", beta.ID), token, gin.H{
		"name": "Beta",
		"phone_numbers": []gin.H{
			{"id": phone.ID, "number": "+1 555 0222"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got models.PhoneNumber
	require.NoError(t, db.First(&got, phone.ID).Error)
	assert.Equal(t, alpha.ID, got.OwnerID)
	assert.Equal(t, "+1 555 0100", got.Number)
}

func TestUpdateCompanyRejectsInvalidEmail(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	token := tokenFor(t, cfg, models.RoleStaff, "contacts.change_company")
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/companies/%d", company.ID), token, gin.H{
		"name": "Acme",
		"email_addresses": []gin.H{
			{"address": "not-an-email"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 验证失败时什么都不保存
	var emailCount int64
	db.Model(&models.EmailAddress{}).Count(&emailCount)
	assert.Zero(t, emailCount)
}

func TestAdminSiteRequiresAdminRole(t *testing.T) {
	r, _, cfg := setupTestRouter(t)

	staffToken := tokenFor(t, cfg, models.RoleStaff, "contacts.add_company")
	w := doJSON(r, http.MethodGet, "/api/admin/site", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := tokenFor(t, cfg, models.RoleAdmin)
	w = doJSON(r, http.MethodGet, "/api/admin/site", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	site := env.Data["site"].([]interface{})
	assert.Len(t, site, 4)
}

func TestAdminEntityListUsesRegisteredOrdering(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	require.NoError(t, db.Create(&models.Location{Name: "Beta", Weight: 2}).Error)
	require.NoError(t, db.Create(&models.Location{Name: "Alpha", Weight: 1}).Error)

	adminToken := tokenFor(t, cfg, models.RoleAdmin)
	w := doJSON(r, http.MethodGet, "/api/admin/location", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	objects := env.Data["object_list"].([]interface{})
	require.Len(t, objects, 2)
	first := objects[0].(map[string]interface{})
	assert.Equal(t, "Alpha", first["name"])
}

func TestAdminEntityListSearch(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	require.NoError(t, db.Create(&models.Company{Name: "Acme"}).Error)
	require.NoError(t, db.Create(&models.Company{Name: "Midway"}).Error)

	adminToken := tokenFor(t, cfg, models.RoleAdmin)
	w := doJSON(r, http.MethodGet, "/api/admin/company?q=Ac", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	objects := env.Data["object_list"].([]interface{})
	require.Len(t, objects, 1)
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	r, _, cfg := setupTestRouter(t)

	staffToken := tokenFor(t, cfg, models.RoleStaff)
	w := doJSON(r, http.MethodGet, "/api/users", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAndListComments(t *testing.T) {
	r, db, cfg := setupTestRouter(t)

	group := models.Group{Name: "Suppliers"}
	require.NoError(t, db.Create(&group).Error)

	token := tokenFor(t, cfg, models.RoleStaff, "contacts.add_comment")
	w := doJSON(r, http.MethodPost, "/api/comments", token, gin.H{
		"owner_type": "group", "owner_id": group.ID, "author": "admin", "body": "renewal due",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, fmt.Sprintf("/api/groups/%d", group.ID), w.Header().Get("Location"))

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/comments?owner_type=group&owner_id=%d", group.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	comments := env.Data["object_list"].([]interface{})
	assert.Len(t, comments, 1)
}
