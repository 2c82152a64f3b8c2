package services

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRegistrationRejected = errors.New("registration rejected by identity provider")
	ErrProfileCreation      = errors.New("failed to create user profile")
	ErrProfileNotFound      = errors.New("profile not found")

	ErrFileNotFound        = errors.New("file not found")
	ErrFileMissingOnServer = errors.New("file not found on server")
	ErrAccessDenied        = errors.New("access denied")
	ErrUploadFailed        = errors.New("failed to upload file")

	ErrUserNotFound     = errors.New("user not found")
	ErrSelfDeletion     = errors.New("cannot delete your own account")
	ErrIdentityDeletion = errors.New("failed to delete user from identity provider")
)
