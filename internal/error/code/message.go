package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "权限不足",
	ErrTooManyRequests:  "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 公司相关错误码
	ErrCompanyNotFound:     "公司不存在",
	ErrCompanyAlreadyExist: "公司已存在",

	// 联系人相关错误码
	ErrPersonNotFound:   "联系人不存在",
	ErrGroupNotFound:    "分组不存在",
	ErrLocationNotFound: "位置类型不存在",
	ErrCommentNotFound:  "评论不存在",
	ErrOwnerNotFound:    "所属对象不存在",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 公司相关错误码
	ErrCompanyNotFound:     StatusNotFound,
	ErrCompanyAlreadyExist: StatusBadRequest,

	// 联系人相关错误码
	ErrPersonNotFound:   StatusNotFound,
	ErrGroupNotFound:    StatusNotFound,
	ErrLocationNotFound: StatusNotFound,
	ErrCommentNotFound:  StatusNotFound,
	ErrOwnerNotFound:    StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}
