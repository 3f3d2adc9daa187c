package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyToken              = "token"
	KeyConfig             = "config"
	KeyDbURL              = "dbUrl"
	KeyCacheKey           = "cacheKey"
	KeyJsonCache          = "jsonCache"
	KeyPathValues         = "pathValues"
	KeyQueryValues        = "queryValues"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyOwner              = "owner"
	KeyOwnerKind          = "ownerKind"
	KeySessionID          = "sessionId"
	KeyPhoneCustomer      = "phoneCustomer"
	KeyProductID          = "productId"
	KeyCartItemID         = "cartItemId"
	KeyCartItem           = "cartItem"
	KeyCartItems          = "cartItems"
	KeyCartItemsCount     = "cartItemsCount"
	KeyCartItemQuantity   = "cartItemQuantity"
	KeyCartItemSize       = "cartItemSize"
	KeyCartItemMood       = "cartItemMood"
	KeyMigrationResult    = "migrationResult"
	KeyMigrationDirection = "migrationDirection"
)
