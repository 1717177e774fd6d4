package site

import "errors"

var ErrNilRegistry = errors.New("site: nil form registry")
