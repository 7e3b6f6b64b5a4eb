// Package domain defines domain-level errors for the symbollist feature.
package domain

import "errors"

// ErrInvalidSymbolCode is returned when a seed entry's code is not 1-7 uppercase letters.
var ErrInvalidSymbolCode = errors.New("invalid symbol code")
