package models

// 子记录多态所属对象的类型值
const (
	OwnerTypeCompany  = "company"
	OwnerTypePerson   = "person"
	OwnerTypeGroup    = "group"
	OwnerTypeLocation = "location"
)

// OwnerModel 根据所属类型返回对应的模型实例
// 用于校验多态引用指向的记录是否存在
func OwnerModel(ownerType string) (interface{}, bool) {
	switch ownerType {
	case OwnerTypeCompany:
		return &Company{}, true
	case OwnerTypePerson:
		return &Person{}, true
	case OwnerTypeGroup:
		return &Group{}, true
	case OwnerTypeLocation:
		return &Location{}, true
	default:
		return nil, false
	}
}
