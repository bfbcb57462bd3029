package usecase

import "errors"

var (
	// ErrPermissionDenied indicates the actor lacks the capability for the operation.
	ErrPermissionDenied = errors.New("insufficient permissions")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEnterpriseNotFound is returned when a referenced enterprise does not exist.
	ErrEnterpriseNotFound = errors.New("enterprise not found")
	// ErrCrossEnterpriseDenied indicates the actor and target belong to different enterprises.
	ErrCrossEnterpriseDenied = errors.New("cannot manage user from different enterprise")
	// ErrCannotManageAdminAccess indicates the target's role is never subject to override management.
	ErrCannotManageAdminAccess = errors.New("cannot manage access for admin users")
	// ErrEmailTaken indicates the email is already registered within the enterprise.
	ErrEmailTaken = errors.New("email already registered in enterprise")
	// ErrInvalidCredentials indicates the login email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserInactive indicates the account has been deactivated.
	ErrUserInactive = errors.New("user is deactivated")
	// ErrInvalidAccessToken indicates the access token failed verification.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the access token is past its expiry.
	ErrExpiredAccessToken = errors.New("access token expired")
)
