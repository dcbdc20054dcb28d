package domain

import "errors"

var (
	// ErrStorageRead means the persisted collection exists but could not be decoded.
	ErrStorageRead = errors.New("project storage unreadable")
	// ErrStorageWrite means the backend or the encoder rejected a write.
	ErrStorageWrite = errors.New("project storage write failed")

	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidProject    = errors.New("invalid project")
	ErrInvalidSkillLevel = errors.New("invalid skill level")

	// ErrEvaluation covers transport failures and unparsable evaluator responses.
	ErrEvaluation = errors.New("project evaluation failed")
)
