package models

// User is the account identity handed to the vault by the login flow.
// It carries everything the key derivation needs except the password, which
// is passed separately and never stored on this type.
type User struct {
	// ID is the server-assigned user identifier. It is blended into the
	// key-derivation salt.
	ID string `json:"id"`

	// Login is the account login, used only for display and logging.
	Login string `json:"login"`

	// SystemPepper is the server-issued pepper returned with the login or
	// registration response.
	SystemPepper string `json:"system_pepper"`

	// Token is the bearer token issued by the server.
	Token string `json:"-"`
}
