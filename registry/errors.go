package registry

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrUnknownKind = fmt.Errorf("%w: unknown curve kind", commerr.ErrInvalidArgument)
	ErrInvalidName = fmt.Errorf("%w: invalid curve name", commerr.ErrInvalidArgument)
)
