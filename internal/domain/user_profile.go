package domain

import "time"

// Address is the optional mailing address on a customer profile.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// UserProfile is the domain model for a registered customer.
//
// UID equals the identity account id and never changes. Deleting a profile
// removes this record only: the identity account and any service requests
// referencing the UID are left in place.
type UserProfile struct {
	UID       string
	Name      string
	Email     string
	Phone     string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProfilePatch enumerates the profile fields a customer may change.
// Nil members are left untouched.
type UserProfilePatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Street  *string
	City    *string
	State   *string
	ZipCode *string
}

// Empty reports whether the patch carries no changes.
func (p UserProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Street == nil && p.City == nil && p.State == nil && p.ZipCode == nil
}

// Apply merges the patch into the profile.
func (p UserProfilePatch) Apply(profile *UserProfile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.Street != nil {
		profile.Address.Street = *p.Street
	}
	if p.City != nil {
		profile.Address.City = *p.City
	}
	if p.State != nil {
		profile.Address.State = *p.State
	}
	if p.ZipCode != nil {
		profile.Address.ZipCode = *p.ZipCode
	}
}
