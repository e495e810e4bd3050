package response

// 业务状态码，0 表示成功，其余按来源分段
const (
	CodeOK = 0

	// 数据层错误 40xx
	ErrDB        = 4001 // 数据库查询或写入失败
	ErrNoData    = 4002 // 查无数据
	ErrDataExist = 4003 // 数据已存在

	// 用户/会话错误 41xx
	ErrSession  = 4101 // 未登录或登录状态失效
	ErrLogin    = 4102 // 用户登录失败
	ErrParam    = 4103 // 参数缺失或格式错误
	ErrUser     = 4104 // 用户不存在或未激活
	ErrRole     = 4105 // 权限不足
	ErrPassword = 4106 // 密码错误

	// 请求限制 42xx
	ErrTooManyRequests = 4201

	// 第三方错误 43xx
	ErrThirdParty = 4301 // 媒体存储/短信服务异常

	// 系统错误 45xx
	ErrServerInternal = 4500
)
