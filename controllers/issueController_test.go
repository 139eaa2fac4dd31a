package controllers

import (
	"testing"
	"time"

	"communityfix-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubmission(t *testing.T) {
	msg, ok := validateSubmission("Pothole", "Large pothole on Main St", "Main St & 5th")
	assert.True(t, ok)
	assert.Empty(t, msg)

	cases := []struct{ title, description, location string }{
		{"", "desc", "loc"},
		{"title", "", "loc"},
		{"title", "desc", ""},
		{"   ", "desc", "loc"},
		{"title", "\t\n", "loc"},
		{"title", "desc", "   "},
	}
	for _, tc := range cases {
		msg, ok := validateSubmission(tc.title, tc.description, tc.location)
		assert.False(t, ok, "title=%q description=%q location=%q", tc.title, tc.description, tc.location)
		assert.NotEmpty(t, msg)
	}
}

func TestImageObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	key := imageObjectKey("64f0c2", "before", "photo.jpg", now)
	assert.Equal(t, "64f0c2/1700000000000-before.jpg", key)

	key = imageObjectKey("64f0c2", "after", "evidence.final.PNG", now)
	assert.Equal(t, "64f0c2/1700000000000-after.PNG", key)

	// No extension on the original filename yields none on the object key.
	key = imageObjectKey("64f0c2", "before", "photo", now)
	assert.Equal(t, "64f0c2/1700000000000-before", key)
}

func TestIssueListFilter(t *testing.T) {
	filter, err := issueListFilter("", false)
	require.NoError(t, err)
	assert.Empty(t, filter)

	filter, err = issueListFilter("all", false)
	require.NoError(t, err)
	assert.Empty(t, filter)

	filter, err = issueListFilter("In Progress", false)
	require.NoError(t, err)
	assert.Equal(t, models.InProgress, filter["status"])

	filter, err = issueListFilter("anything", true)
	require.NoError(t, err)
	assert.Equal(t, models.Completed, filter["status"], "completed variant overrides the status param")

	_, err = issueListFilter("Pending", false)
	assert.Error(t, err)
}
