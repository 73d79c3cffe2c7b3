package util

import "errors"

var (
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrJobPostingNotFound  = errors.New("job posting not found")
	ErrCoverLetterNotFound = errors.New("cover letter not found")
	ErrSessionNotFound     = errors.New("interview session not found")
	ErrTurnNotFound        = errors.New("interview turn not found")
	ErrTurnAlreadyAnswered = errors.New("interview turn already answered")
	ErrEmptyDocumentText   = errors.New("no text content found in document")
	ErrUpstreamFormat      = errors.New("malformed upstream response")
)
