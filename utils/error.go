package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")
var ErrorSessionNotFound = errors.New("session not found")
