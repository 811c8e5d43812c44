package clientconfig

import "errors"

var (
	errSourceUnavailable = errors.New("configuration source unavailable")
	errSectionMissing    = errors.New("environment section missing or not a mapping")
	errEntryKeyInvalid   = errors.New("entry key is not a string")
	errEntryValueInvalid = errors.New("entry value is not a boolean")
	errEmptyResult       = errors.New("no configurations found")
)
