package apiclient

// ErrorResponse is the error body written by the shop API.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// UserPayload is the user object of GET /users/loginToken. The RoleId casing
// is what the backend emits.
type UserPayload struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RoleID int64  `json:"RoleId"`
}

// LoginTokenResponse.User is nil when the server omitted the user object.
type LoginTokenResponse struct {
	User *UserPayload `json:"user"`
}

type CheckAdminRequest struct {
	RoleID int64 `json:"RoleId"`
}

type CheckAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
