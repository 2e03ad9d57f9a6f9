package domain

import "errors"

var ErrAuthRejected = errors.New("credentials rejected")
var ErrTokenInvalid = errors.New("token expired or invalid")
var ErrUpstreamUnavailable = errors.New("ordering backend unavailable")
var ErrNoSession = errors.New("no active session")
var ErrForbidden = errors.New("access forbidden")
