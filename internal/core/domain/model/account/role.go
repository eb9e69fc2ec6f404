package account

import "shipping/internal/pkg/errs"

// Role distinguishes the two account kinds. Authorization decisions hang off
// the role carried in the access token: sellers mutate their own shipments,
// partners append tracking events to shipments assigned to them.
type Role string

const (
	RoleSeller  Role = "seller"
	RolePartner Role = "partner"
)

// RoleFromString parses a persisted role name.
func RoleFromString(name string) (Role, error) {
	switch Role(name) {
	case RoleSeller:
		return RoleSeller, nil
	case RolePartner:
		return RolePartner, nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

// String returns the persisted name of the role.
func (r Role) String() string {
	return string(r)
}

// Validate checks the role is one of the defined account kinds.
func (r Role) Validate() error {
	if r != RoleSeller && r != RolePartner {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}
