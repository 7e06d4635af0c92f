package equipment

import "errors"

var ErrUnsupportedKind = errors.New("no efficiency rules for component kind")
