package models

// LoginResult is what a successful login hands to the transport layer.
type LoginResult struct {
	User   PublicUser
	Tokens TokenPair
}

// MessageResponse is a body carrying only a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned with 201 on successful registration.
type RegisterResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

// LoginResponse is returned on successful login. Tokens are flattened
// into the top level of the body.
type LoginResponse struct {
	Message      string     `json:"message"`
	User         PublicUser `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// RefreshResponse is returned on a successful token refresh.
type RefreshResponse struct {
	Message string    `json:"message"`
	Tokens  TokenPair `json:"tokens"`
}

// UsersResponse lists registered users without their credentials.
type UsersResponse struct {
	Message   string         `json:"message"`
	Results   []UserListItem `json:"results"`
	UserCount int            `json:"user_count"`
}

// ErrorResponse is the body of every failed request. Kind is stable and
// machine-readable; Message is meant for humans.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
