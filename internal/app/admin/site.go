package admin

import (
	"contacts-http-service/internal/domain/models"
)

// 通用的子记录内联编辑器配置
var contactInlines = []Inline{
	{Model: "phone_number", Style: InlineTabular},
	{Model: "email_address", Style: InlineTabular},
	{Model: "web_site", Style: InlineTabular},
	{Model: "street_address", Style: InlineStacked},
	{Model: "comment", Style: InlineStacked},
}

// RegisterContactAdmins 注册联系人应用的全部管理配置
func RegisterContactAdmins() {
	Register(&ModelAdmin{
		Entity:       models.OwnerTypeCompany,
		Inlines:      contactInlines,
		ListDisplay:  []string{"name"},
		Ordering:     []string{"name"},
		SearchFields: []string{"^name"},
	})

	Register(&ModelAdmin{
		Entity:           models.OwnerTypePerson,
		Inlines:          contactInlines,
		ListDisplay:      []string{"first_name", "last_name", "company"},
		ListDisplayLinks: []string{"first_name", "last_name"},
		ListFilter:       []string{"company"},
		Ordering:         []string{"last_name", "first_name"},
		SearchFields:     []string{"^first_name", "^last_name", "^company.name"},
	})

	Register(&ModelAdmin{
		Entity:           models.OwnerTypeGroup,
		ListDisplay:      []string{"name", "updated_at"},
		ListDisplayLinks: []string{"name"},
		Ordering:         []string{"-updated_at", "name"},
		SearchFields:     []string{"^name", "^about"},
	})

	Register(&ModelAdmin{
		Entity:           models.OwnerTypeLocation,
		ListDisplay:      []string{"name", "updated_at"},
		ListDisplayLinks: []string{"name"},
		Ordering:         []string{"weight", "name"},
		SearchFields:     []string{"^name"},
		Fieldsets: []Fieldset{
			{
				Label:  "Advanced options",
				Fields: [][]string{{"is_phone", "is_street_address"}},
			},
		},
	})
}
