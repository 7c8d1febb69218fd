package loader

import "errors"

var (
	ErrBadLayout       = errors.New("bad room layout")
	ErrBadDestination  = errors.New("destination is not a valid cell")
	ErrUnknownKind     = errors.New("unknown kind")
	ErrDuplicateNumber = errors.New("duplicate room number")
)
