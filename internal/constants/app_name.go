package constants

const (
	APP_CART_SERVICE   = "cart-service"
	APP_CART_MIGRATION = "cart-migration"
	APP_MAIN_CART      = "main shoppingcart"
	APP_USER_SERVICE   = "user-service"
	AUDIENCE_USER      = "audience-user"
)
