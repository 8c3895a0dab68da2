package repository

import "errors"

var ErrDuplicate = errors.New("record already exists")
