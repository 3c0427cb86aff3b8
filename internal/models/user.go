package models

// Role determines which dashboard a user may access.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// User represents an account in the clinic. Passwords are stored in clear
// text: this is a demo dataset and authentication security is explicitly out
// of scope.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// Sanitized returns a copy of the user safe to send to API clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Registration carries the fields a new client account is created from.
// The id is generated by the store and the role is always forced to client.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
}

// UserPatch lists the user fields that may be updated. Nil fields keep their
// current value.
type UserPatch struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
}

// Apply merges the non-nil patch fields into the user.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.BirthDate != nil {
		u.BirthDate = *p.BirthDate
	}
}
