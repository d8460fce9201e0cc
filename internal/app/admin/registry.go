package admin

import (
	"sort"
	"sync"
)

// 内联编辑器样式
const (
	InlineTabular = "tabular"
	InlineStacked = "stacked"
)

// Inline 描述一个子记录内联编辑器
type Inline struct {
	Model string `json:"model"` // 子记录类型，如 phone_number
	Style string `json:"style"` // tabular 或 stacked
}

// Fieldset 描述编辑页上成组显示的字段
type Fieldset struct {
	Label  string     `json:"label"`
	Fields [][]string `json:"fields"` // 内层切片中的字段显示在同一行
}

// ModelAdmin 描述一个实体的管理界面配置
// 纯声明式配置，本身不包含任何业务逻辑
type ModelAdmin struct {
	Entity           string     `json:"entity"`
	Inlines          []Inline   `json:"inlines,omitempty"`
	ListDisplay      []string   `json:"list_display"`
	ListDisplayLinks []string   `json:"list_display_links,omitempty"`
	ListFilter       []string   `json:"list_filter,omitempty"`
	Ordering         []string   `json:"ordering"` // 前缀"-"表示倒序
	SearchFields     []string   `json:"search_fields"` // 前缀"^"表示按前缀搜索
	Fieldsets        []Fieldset `json:"fieldsets,omitempty"`
}

var (
	registry   = make(map[string]*ModelAdmin)
	registryMu sync.RWMutex
)

// Register 注册一个实体的管理配置，重复注册会覆盖
func Register(modelAdmin *ModelAdmin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[modelAdmin.Entity] = modelAdmin
}

// Get 获取实体的管理配置
func Get(entity string) (*ModelAdmin, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	modelAdmin, ok := registry[entity]
	return modelAdmin, ok
}

// Site 返回全部已注册的管理配置，按实体名排序
func Site() []*ModelAdmin {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	site := make([]*ModelAdmin, 0, len(names))
	for _, name := range names {
		site = append(site, registry[name])
	}
	return site
}
