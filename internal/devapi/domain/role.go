package domain

// Well-known roles seeded by the initial migration.
const (
	RoleAdmin    int64 = 1
	RoleCustomer int64 = 2
)

type Role struct {
	ID      int64
	Name    string
	IsAdmin bool
}
