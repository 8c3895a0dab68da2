package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepartmentUtilization_Percentage(t *testing.T) {
	tests := []struct {
		used, total, want int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
	}

	for _, tt := range tests {
		u := DepartmentUtilization{Department: "CS", Used: tt.used, Total: tt.total}
		assert.Equal(t, tt.want, u.Percentage(), "%d/%d", tt.used, tt.total)
	}
}
