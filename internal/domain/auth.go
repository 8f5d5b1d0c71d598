package domain

import "time"

// SubjectType differentiates customer vs back-office tokens.
type SubjectType string

const (
	SubjectTypeCustomer SubjectType = "CUSTOMER"
	SubjectTypeAdmin    SubjectType = "ADMIN"
)

// AdminRole enumerates back-office roles.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "ADMIN"
	AdminRoleTechnician AdminRole = "TECHNICIAN"
)

// Account is the credentials record backing a customer login. It stands in
// for the external identity provider and is intentionally separate from the
// profile: deleting a UserProfile does not touch its Account.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AdminUser is a back-office operator.
type AdminUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
