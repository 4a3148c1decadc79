package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")
var ErrInvalidInput = errors.New("invalid input")
var ErrEndBeforeStart = errors.New("end must be after start")
