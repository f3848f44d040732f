package repository

import "errors"

// ErrNotFound returned by lookups that found nothing
var ErrNotFound = errors.New("not found")
