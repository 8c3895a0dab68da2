package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/proctor_bot/internal/service"
)

// commandArgs отрезает команду и делит остаток по "|".
// Возвращает ErrMissingArguments, если полей меньше want.
func commandArgs(text string, want int) ([]string, error) {
	_, rest, _ := strings.Cut(strings.TrimSpace(text), " ")

	var args []string
	if rest = strings.TrimSpace(rest); rest != "" {
		for _, part := range strings.Split(rest, argSeparator) {
			args = append(args, strings.TrimSpace(part))
		}
	}

	if len(args) < want {
		return nil, fmt.Errorf("%w: got %d, need %d", common.ErrMissingArguments, len(args), want)
	}
	return args, nil
}

// optional поле по индексу или пустая строка
func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func parseInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", common.ErrInvalidNumber, field, raw)
	}
	return n, nil
}

func parseTimetable(text string) (service.TimetableInput, error) {
	args, err := commandArgs(text, 4)
	if err != nil {
		return service.TimetableInput{}, err
	}
	return service.TimetableInput{
		Weekday:   args[0],
		Subject:   args[1],
		StartTime: args[2],
		EndTime:   args[3],
		Semester:  optional(args, 4),
	}, nil
}

func parseProfessor(text string) (service.ProfessorInput, error) {
	args, err := commandArgs(text, 4)
	if err != nil {
		return service.ProfessorInput{}, err
	}
	return service.ProfessorInput{
		ContactChannel: args[0],
		Name:           args[1],
		Department:     args[2],
		Designation:    args[3],
		Phone:          optional(args, 4),
	}, nil
}

func parseClassroom(text string) (service.ClassroomInput, error) {
	args, err := commandArgs(text, 5)
	if err != nil {
		return service.ClassroomInput{}, err
	}

	floor, err := parseInt("floor", args[2])
	if err != nil {
		return service.ClassroomInput{}, err
	}
	capacity, err := parseInt("capacity", args[4])
	if err != nil {
		return service.ClassroomInput{}, err
	}

	var facilities []string
	for _, f := range strings.Split(optional(args, 5), ",") {
		if f = strings.TrimSpace(f); f != "" {
			facilities = append(facilities, f)
		}
	}

	return service.ClassroomInput{
		Name:       args[0],
		Department: args[1],
		Floor:      floor,
		RoomNumber: args[3],
		Capacity:   capacity,
		Facilities: facilities,
	}, nil
}

func parseExamSlot(text string) (date, subject string, err error) {
	args, err := commandArgs(text, 2)
	if err != nil {
		return "", "", err
	}
	return args[0], args[1], nil
}
