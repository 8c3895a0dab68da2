package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func advisorInput() allocation.AdvisorInput {
	return allocation.AdvisorInput{
		Professor: model.Professor{ID: "p1", Name: "Ada", Department: "CS", Designation: model.DesignationProfessor},
		Weekday:   "Monday",
		Slot: model.ExamSlot{
			ID:      "s1",
			Date:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			Weekday: "Monday",
			Subject: "Algorithms",
		},
		Classrooms: []model.Classroom{
			{ID: "c1", Name: "Lab 1", Department: "CS", Floor: 1, RoomNumber: "101", Capacity: 30},
			{ID: "c2", Name: "Hall", Department: "EE", Floor: 2, RoomNumber: "201", Capacity: 60},
		},
		Occupied: []string{"c1"},
	}
}

func newTestGemini(answer string, err error) (*Gemini, *string) {
	var prompt string
	g := &Gemini{
		generate: func(ctx context.Context, p string) (string, error) {
			prompt = p
			return answer, err
		},
		logger: zap.NewNop(),
	}
	return g, &prompt
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Suggestion
		wantErr error
	}{
		{
			name: "plain json",
			text: `{"allocated_classroom_id": "c2", "success": true, "reason": "free"}`,
			want: Suggestion{ClassroomID: "c2", Success: true, Reason: "free"},
		},
		{
			name: "markdown fenced",
			text: "```json\n{\"allocated_classroom_id\": \" c2 \", \"success\": true, \"reason\": \"ok\"}\n```",
			want: Suggestion{ClassroomID: "c2", Success: true, Reason: "ok"},
		},
		{
			name: "success without id",
			text: `{"allocated_classroom_id": "", "success": true, "reason": "none"}`,
			want: Suggestion{Success: false, Reason: "none"},
		},
		{name: "empty", text: "  ", wantErr: ErrEmptyResponse},
		{name: "no object", text: "I cannot help", wantErr: ErrMalformedAnswer},
		{name: "broken json", text: `{"success": tru}`, wantErr: ErrMalformedAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestion(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestBuildPrompt_MarksOccupiedClassrooms(t *testing.T) {
	prompt := BuildPrompt(advisorInput())

	assert.Contains(t, prompt, "Professor: Ada, department CS")
	assert.Contains(t, prompt, "Exam: Algorithms on 2024-03-04 (Monday)")
	assert.Contains(t, prompt, "id=c1 name=Lab 1 department=CS floor=1 room=101 capacity=30 status=occupied")
	assert.Contains(t, prompt, "id=c2 name=Hall department=EE floor=2 room=201 capacity=60 status=free")
}

func TestSuggest_ReturnsClassroom(t *testing.T) {
	g, prompt := newTestGemini(`{"allocated_classroom_id": "c2", "success": true, "reason": "free"}`, nil)

	id, err := g.Suggest(context.Background(), advisorInput())
	require.NoError(t, err)
	assert.Equal(t, "c2", id)
	assert.Contains(t, *prompt, "Algorithms")
}

func TestSuggest_DeclinedReturnsEmpty(t *testing.T) {
	g, _ := newTestGemini(`{"allocated_classroom_id": "", "success": false, "reason": "all occupied"}`, nil)

	id, err := g.Suggest(context.Background(), advisorInput())
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSuggest_PropagatesErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	g, _ := newTestGemini("", boom)

	_, err := g.Suggest(context.Background(), advisorInput())
	assert.ErrorIs(t, err, boom)

	g, _ = newTestGemini("not json", nil)
	_, err = g.Suggest(context.Background(), advisorInput())
	assert.ErrorIs(t, err, ErrMalformedAnswer)
}
