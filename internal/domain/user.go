package domain

type ContextKey string

const UserContextKey ContextKey = "user"

// User is the caller identity decoded from the access token. Accounts are
// managed by the auth service; this service only reads the claims.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Address is a shipping destination as entered at checkout. Every field is
// free text and may be empty.
type Address struct {
	Country          string `json:"country"`
	City             string `json:"city"`
	State            string `json:"state"`
	PostalCode       string `json:"postalCode"`
	FormattedAddress string `json:"formattedAddress"`
}
