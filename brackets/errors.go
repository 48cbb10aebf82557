package brackets

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrSizeMismatch          = errors.New("size mismatch")
	ErrUnsupportedGroupCount = errors.New("unsupported number of groups")
	ErrMissingCourts         = errors.New("not enough courts")
	ErrNoGroups              = errors.New("no groups to build finals from")
	ErrIndecisiveResult      = errors.New("round has a missing or tied result")
	ErrInvalidLadderState    = errors.New("invalid ladder state")
	ErrWrongCourtCount       = errors.New("court count must be half the number of pairs")
	ErrRoundNotFound         = errors.New("round not found")
	ErrRoundAlreadyScored    = errors.New("round already has results")
	ErrLaterRoundsExist      = errors.New("later rounds already have games")
)
