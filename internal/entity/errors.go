package entity

import "errors"

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrLeadAlreadyImported = errors.New("lead already imported")
	ErrNoAdvisorsAvailable = errors.New("no advisors available to assign the new lead")
	ErrInvalidStage        = errors.New("invalid funnel stage")
	ErrInvalidOperation    = errors.New("invalid operation")
)
