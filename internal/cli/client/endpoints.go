package client

const (
	// API version prefix
	apiV1Prefix = "/api/v1"

	// Authentication endpoints
	endpointSignup        = apiV1Prefix + "/auth/signup"
	endpointLogin         = apiV1Prefix + "/auth/login"
	endpointVerifyEmail   = apiV1Prefix + "/auth/verify-email"
	endpointResetPassword = apiV1Prefix + "/auth/reset-password"
	endpointValidateToken = apiV1Prefix + "/auth/validate-token"

	// Account endpoints
	endpointCurrentUser = apiV1Prefix + "/users/me"

	// Conversation endpoints
	endpointConversations       = apiV1Prefix + "/conversations"
	endpointConversationByID    = apiV1Prefix + "/conversations/%s"        // GET, PUT, DELETE
	endpointConversationsSearch = apiV1Prefix + "/conversations/search/%s" // GET

	// Chat endpoints
	endpointChatAuth  = apiV1Prefix + "/chat/auth"
	endpointChatGuest = apiV1Prefix + "/chat/guest"
)
