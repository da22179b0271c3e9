package utils

// User-facing message catalog. Handlers and middleware reference these
// instead of inlining strings so the API responses stay consistent.
const (
	MsgCardNotFound    = "Card not found or unauthorised"
	MsgCardDeleted     = "Card deleted successfully"
	MsgLoginSuccess    = "Login successful"
	MsgInvalidLogin    = "Invalid email or password"
	MsgMissingData     = "All fields must be completed"
	MsgRegisterSuccess = "User registered successfully"
	MsgRegisterError   = "Server error during registration"
	MsgTokenMissing    = "Access denied. No token provided."
	MsgTokenInvalid    = "Invalid or expired token."
	MsgTradeNotFound   = "Trade request not found"
	MsgNotParticipant  = "Only trade participants may act on this trade"
	MsgInvalidStatus   = "Invalid trade status"
	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgServerError     = "An unexpected error occurred on the server"
)
