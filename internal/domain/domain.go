package domain

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Claims identifies the caller of a request, as asserted by the auth service.
type Claims struct {
	Email string `json:"sub"`
	Role  Role   `json:"role"`
}
