package constants

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_CASHIER = "CASHIER"
)

const (
	MISSING_LOGIN_INPUT   = "Username and password are required"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_PASSWORD      = "Incorrect password"
	ACCOUNT_NOT_ACTIVE    = "Account is disabled"
	CAN_NOT_HASH_PASSWORD = "Could not hash password"
	ERROR_INTERNAL_ERROR  = "Internal server error"
	ERROR_CREATE          = "Could not create record"
	ERROR_NOT_FOUND       = "Record not found"
)

const (
	ELITE_DISCOUNT_RATE     = 0.10
	ELITE_SUBSCRIPTION_FEE  = 100.0
	ELITE_DINE_IN_THRESHOLD = 5
)
