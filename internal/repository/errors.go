package repository

import "errors"

// ErrBootstrapUnavailable is returned when the first admin has already been granted.
var ErrBootstrapUnavailable = errors.New("admin bootstrap unavailable")
