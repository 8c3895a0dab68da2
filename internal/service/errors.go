package service

import "errors"

var (
	ErrProfessorNotFound = errors.New("professor not found")
	ErrProfessorExists   = errors.New("professor with this contact channel already exists")
	ErrInvalidDate       = errors.New("invalid exam date")
	ErrInvalidWeekday    = errors.New("invalid weekday")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
)
