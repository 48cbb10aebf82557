package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrUnknownTemplate    = errors.New("unknown tournament template")
	ErrUnknownFormat      = errors.New("unknown tournament format")

	// Ошибки валидации и бизнес-правил
	ErrInvalidDate              = errors.New("invalid event date")
	ErrFormatNotSet             = errors.New("tournament format is not set")
	ErrInvalidPairs             = errors.New("invalid pairs")
	ErrInvalidCourts            = errors.New("invalid courts")
	ErrInvalidScore             = errors.New("invalid score")
	ErrWrongFormat              = errors.New("operation not available for this tournament format")
	ErrScheduleLocked           = errors.New("results already recorded; the schedule can no longer change")
	ErrNotScheduled             = errors.New("tournament has no schedule yet")
	ErrClassificationIncomplete = errors.New("final classification is not complete")

	// Ошибки состояния
	ErrTournamentClosed       = errors.New("tournament is closed")
	ErrInvalidStateTransition = errors.New("invalid tournament state transition")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid organizer password")
	ErrAuthInvalidToken       = errors.New("invalid or expired token")
	ErrForbiddenOperation     = errors.New("operation requires an organizer")

	ErrExportUnavailable = errors.New("export storage is not configured")
)
