package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableDate(t *testing.T) {
	cases := []struct {
		body  string
		set   bool
		valid bool
		date  string
	}{
		{`{}`, false, false, ""},
		{`{"dueDate": null}`, true, false, ""},
		{`{"dueDate": ""}`, true, false, ""},
		{`{"dueDate": "2026-02-14"}`, true, true, "2026-02-14"},
		{`{"dueDate": "2026-02-14T23:00:00Z"}`, true, true, "2026-02-14"},
	}
	for _, tc := range cases {
		var req UpdateProjectRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)
		assert.Equal(t, tc.set, req.DueDate.Set, tc.body)
		assert.Equal(t, tc.valid, req.DueDate.Valid, tc.body)
		if tc.valid {
			assert.Equal(t, tc.date, *FormatDate(req.DueDate.Ptr()))
		} else {
			assert.Nil(t, req.DueDate.Ptr())
		}
	}
}

func TestNullableDateRejectsGarbage(t *testing.T) {
	var req UpdateProjectRequest
	assert.Error(t, json.Unmarshal([]byte(`{"dueDate": "next week"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"dueDate": 5}`), &req))
}
