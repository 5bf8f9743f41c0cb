package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRole mirrors the roles issued by the auth service.
type UserRole string

const (
	RoleAdmin           UserRole = "ADMIN"
	RoleShiftSupervisor UserRole = "SHIFT_SUPERVISOR"
	RoleEmployee        UserRole = "EMPLOYEE"
)

// JWTClaims represents the JWT payload issued by the auth service.
// The scheduler only validates tokens; it never issues them.
type JWTClaims struct {
	EmployeeID string   `json:"employee_id"`
	Role       UserRole `json:"role"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Identity is the pre-resolved caller identity handed to services.
// Services check ownership against EmployeeID and approval rights against
// CanApprove instead of parsing role strings.
type Identity struct {
	EmployeeID  string
	DisplayName string
	Role        UserRole
	CanApprove  bool
}

// IdentityFromClaims resolves validated claims into a caller identity.
func IdentityFromClaims(claims *JWTClaims) Identity {
	if claims == nil {
		return Identity{}
	}
	return Identity{
		EmployeeID:  claims.EmployeeID,
		DisplayName: claims.FullName,
		Role:        claims.Role,
		CanApprove:  claims.Role == RoleAdmin || claims.Role == RoleShiftSupervisor,
	}
}
