package schedule

import "errors"

var (
	ErrUnknownSlot   = errors.New("service.schedule: slot is not offered on this date")
	ErrInvalidConfig = errors.New("service.schedule: invalid slot configuration")
)
