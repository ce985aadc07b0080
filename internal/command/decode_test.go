package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatch(t *testing.T) {
	input := `[
		{"type": "project_add", "temp_id": "proj-tmp", "args": {"name": "Groceries"}},
		{"type": "item_add", "args": {"content": "Milk", "project_id": "proj-tmp", "priority": 2}},
		{"type": "item_close", "args": {"id": "T7"}}
	]`

	b := NewBuilder(&counterGen{})
	require.NoError(t, DecodeBatch(strings.NewReader(input), b))

	envs := b.Build()
	require.Len(t, envs, 3)

	assert.Equal(t, TypeProjectAdd, envs[0].Type)
	assert.Equal(t, "proj-tmp", envs[0].TempID)
	assert.Equal(t, ProjectAddArgs{Name: "Groceries"}, envs[0].Args)

	add, ok := envs[1].Args.(ItemAddArgs)
	require.True(t, ok)
	assert.Equal(t, "Milk", add.Content)
	require.NotNil(t, add.ProjectID)
	assert.Equal(t, "proj-tmp", *add.ProjectID)
	assert.NotEmpty(t, envs[1].TempID)

	assert.Equal(t, ItemCloseArgs{ID: "T7"}, envs[2].Args)
	assert.Empty(t, envs[2].TempID)
}

func TestDecodeBatch_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", `{`, ErrInvalidArgument},
		{"object instead of array", `{"type":"item_add"}`, ErrInvalidArgument},
		{"empty", `[]`, ErrMissingArgument},
		{"unknown type", `[{"type":"item_explode","args":{}}]`, ErrUnknownCommand},
		{"bad args", `[{"type":"item_add","args":{"content":5}}]`, ErrInvalidArgument},
		{"missing content", `[{"type":"item_add","args":{}}]`, ErrMissingArgument},
		{"temp id on close", `[{"type":"item_close","temp_id":"x","args":{"id":"T1"}}]`, ErrInvalidArgument},
		{"duplicate temp id", `[
			{"type":"label_add","temp_id":"x","args":{"name":"a"}},
			{"type":"label_add","temp_id":"x","args":{"name":"b"}}
		]`, ErrDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeBatch(strings.NewReader(tt.input), NewBuilder(&counterGen{}))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(TypeFilterUpdateOrders))
	assert.False(t, Supported("item_explode"))
}
