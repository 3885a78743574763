package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "Invalid request parameters",
		"error.unauthorized":             "Please sign in first",
		"error.token_invalid":            "Session is invalid or expired",
		"error.forbidden":                "You do not have permission to perform this action",
		"error.account_disabled":         "This account has been disabled",
		"error.not_found":                "Resource not found",
		"error.too_many_requests":        "Too many requests, please try again later",
		"error.internal":                 "Internal server error",
		"error.user_id_invalid":          "Invalid user id",
		"error.user_id_type_invalid":     "Invalid user id type",
		"error.admin_id_invalid":         "Invalid administrator id",
		"error.product_not_found":        "Product not found",
		"error.product_unavailable":      "Product is no longer available",
		"error.product_fetch_failed":     "Failed to load products",
		"error.category_fetch_failed":    "Failed to load categories",
		"error.quantity_invalid":         "Quantity must be a positive number",
		"error.moq_exceeded":             "Quantity does not satisfy the minimum order quantity",
		"error.cart_conflict":            "Your cart was changed elsewhere, please retry",
		"error.cart_update_failed":       "Failed to update cart",
		"error.cart_fetch_failed":        "Failed to load cart",
		"error.cart_empty":               "Your cart is empty",
		"error.shipping_address_invalid": "Shipping address is incomplete",
		"error.payment_method_invalid":   "Unsupported payment method",
		"error.payment_gateway_failed":   "Payment gateway is temporarily unavailable",
		"error.payment_config_invalid":   "Online payment is not configured",
		"error.payment_verify_failed":    "Payment verification failed",
		"error.order_create_failed":      "Failed to create order",
		"error.order_fetch_failed":       "Failed to load orders",
		"error.order_update_failed":      "Failed to update order",
		"error.order_not_found":          "Order not found",
		"error.order_cancel_not_allowed": "Order cannot be cancelled in its current status",
		"error.order_status_invalid":     "Unknown order status",
		"error.order_status_transition":  "Order status change is not allowed",
		"error.enquiry_invalid":          "Please check the enquiry details",
		"error.enquiry_not_found":        "Enquiry not found",
		"error.enquiry_status_invalid":   "Enquiry cannot be changed in its current status",
		"error.enquiry_fetch_failed":     "Failed to load enquiries",
		"error.enquiry_create_failed":    "Failed to submit enquiry",
		"error.enquiry_update_failed":    "Failed to update enquiry",
		"error.supplier_invalid":         "Please check the application details",
		"error.supplier_duplicate":       "An application with this email is already open",
		"error.supplier_not_found":       "Supplier application not found",
		"error.supplier_status_invalid":  "Supplier application has already been decided",
		"error.supplier_fetch_failed":    "Failed to load supplier applications",
		"error.supplier_apply_failed":    "Failed to submit application",
		"error.supplier_update_failed":   "Failed to update supplier application",
		"error.user_not_found":           "User not found",
		"error.captcha_required":         "Please complete the captcha",
		"error.captcha_invalid":          "Captcha is incorrect",
		"error.captcha_config_invalid":   "Captcha is not enabled",
		"error.captcha_generate_failed":  "Failed to generate captcha",
		"error.rate_limited":             "Too many attempts, please retry in %d seconds",
		"error.auth_header_missing":      "Authorization header is missing",
		"error.auth_header_invalid":      "Authorization header must use the Bearer scheme",
		"error.admin_id_type_invalid":    "Admin identity has an unexpected type",
		"error.role_invalid":             "Role name is invalid",
		"error.authz_fetch_failed":       "Failed to load permissions",
		"error.authz_update_failed":      "Failed to update permissions",
		"error.jwt_secret_missing":       "Authentication is not configured",
	},
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "请先登录",
		"error.token_invalid":            "登录状态无效或已过期",
		"error.forbidden":                "无权执行该操作",
		"error.account_disabled":         "账号已被禁用",
		"error.not_found":                "资源不存在",
		"error.too_many_requests":        "请求过于频繁，请稍后再试",
		"error.internal":                 "服务器内部错误",
		"error.user_id_invalid":          "用户ID无效",
		"error.user_id_type_invalid":     "用户ID类型错误",
		"error.admin_id_invalid":         "管理员ID无效",
		"error.product_not_found":        "商品不存在",
		"error.product_unavailable":      "商品已下架",
		"error.product_fetch_failed":     "获取商品失败",
		"error.category_fetch_failed":    "获取分类失败",
		"error.quantity_invalid":         "数量必须为正整数",
		"error.moq_exceeded":             "数量不符合起订量要求",
		"error.cart_conflict":            "购物车已在其他地方修改，请重试",
		"error.cart_update_failed":       "更新购物车失败",
		"error.cart_fetch_failed":        "获取购物车失败",
		"error.cart_empty":               "购物车为空",
		"error.shipping_address_invalid": "收货地址不完整",
		"error.payment_method_invalid":   "不支持的支付方式",
		"error.payment_gateway_failed":   "支付网关暂时不可用",
		"error.payment_config_invalid":   "在线支付未配置",
		"error.payment_verify_failed":    "支付校验失败",
		"error.order_create_failed":      "创建订单失败",
		"error.order_fetch_failed":       "获取订单失败",
		"error.order_update_failed":      "更新订单失败",
		"error.order_not_found":          "订单不存在",
		"error.order_cancel_not_allowed": "当前状态的订单不可取消",
		"error.order_status_invalid":     "未知的订单状态",
		"error.order_status_transition":  "不允许的订单状态变更",
		"error.enquiry_invalid":          "请检查询盘内容",
		"error.enquiry_not_found":        "询盘不存在",
		"error.enquiry_status_invalid":   "当前状态的询盘不可变更",
		"error.enquiry_fetch_failed":     "获取询盘失败",
		"error.enquiry_create_failed":    "提交询盘失败",
		"error.enquiry_update_failed":    "更新询盘失败",
		"error.supplier_invalid":         "请检查申请信息",
		"error.supplier_duplicate":       "该邮箱已有进行中的申请",
		"error.supplier_not_found":       "供应商申请不存在",
		"error.supplier_status_invalid":  "供应商申请已审核",
		"error.supplier_fetch_failed":    "获取供应商申请失败",
		"error.supplier_apply_failed":    "提交申请失败",
		"error.supplier_update_failed":   "更新供应商申请失败",
		"error.user_not_found":           "用户不存在",
		"error.captcha_required":         "请完成验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_config_invalid":   "验证码未启用",
		"error.captcha_generate_failed":  "生成验证码失败",
		"error.rate_limited":             "操作过于频繁，请 %d 秒后重试",
		"error.auth_header_missing":      "缺少 Authorization 请求头",
		"error.auth_header_invalid":      "Authorization 请求头必须使用 Bearer 方式",
		"error.admin_id_type_invalid":    "管理员身份类型异常",
		"error.role_invalid":             "角色名称无效",
		"error.authz_fetch_failed":       "获取权限失败",
		"error.authz_update_failed":      "更新权限失败",
		"error.jwt_secret_missing":       "认证服务未配置",
	},
}
