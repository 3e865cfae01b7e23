package interp

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrInvalidInput         = fmt.Errorf("%w: invalid input", commerr.ErrInvalidArgument)
	ErrOutOfRange           = fmt.Errorf("%w: index", commerr.ErrOutOfRange)
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrMalformedData        = errors.New("malformed data")
)

func invalidInput(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}

func malformedData(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedData, fmt.Sprintf(format, a...))
}

func fmtOutOfRange(i, n int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, n)
}
