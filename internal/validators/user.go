package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-door-keeper/models"
)

// Field name constants for user validation scoping.
const (
	// FieldUsername targets the unique account identifier.
	FieldUsername = "username"

	// FieldRole targets the privilege tier.
	FieldRole = "role"

	// FieldPermissions targets the granted capability list.
	FieldPermissions = "permissions"

	// FieldAccessWindow targets the access type / access until pair.
	FieldAccessWindow = "access_window"
)

var allowedRoles = []models.Role{
	models.RoleAdmin,
	models.RoleUser,
	models.RoleGuest,
}

var allowedPermissions = []models.Permission{
	models.PermissionUnlock,
	models.PermissionViewLogs,
	models.PermissionManageUsers,
	models.PermissionChangeSettings,
}

// UserValidator implements the Validator interface for [models.User].
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator
// and returns it as the Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate accepts models.User in value or pointer form.
// Returns ErrUnsupportedType for anything else.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *UserValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldRole, FieldPermissions, FieldAccessWindow}
	}

	for _, field := range fields {
		switch field {
		case FieldUsername:
			if user.Username == "" {
				return ErrEmptyUsername
			}

		case FieldRole:
			if !containsRole(user.Role) {
				return fmt.Errorf("%w: %s", ErrInvalidRole, user.Role)
			}

		case FieldPermissions:
			for _, permission := range user.Permissions {
				if !containsPermission(permission) {
					return fmt.Errorf("%w: %s", ErrInvalidPermission, permission)
				}
			}

		case FieldAccessWindow:
			switch user.AccessType {
			case models.AccessFull:
				// no window to check
			case models.AccessLimited:
				if user.AccessUntil == nil {
					return ErrMissingAccessUntil
				}
			default:
				return fmt.Errorf("%w: %s", ErrInvalidAccessType, user.AccessType)
			}

		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func containsRole(role models.Role) bool {
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

func containsPermission(permission models.Permission) bool {
	for _, allowed := range allowedPermissions {
		if permission == allowed {
			return true
		}
	}
	return false
}
