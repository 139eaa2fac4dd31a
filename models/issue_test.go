package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNext(t *testing.T) {
	next, ok := UnderReview.Next()
	assert.True(t, ok)
	assert.Equal(t, InProgress, next)

	next, ok = InProgress.Next()
	assert.True(t, ok)
	assert.Equal(t, Completed, next)

	_, ok = Completed.Next()
	assert.False(t, ok, "Completed is terminal")

	_, ok = IssueStatus("Garbage").Next()
	assert.False(t, ok)
}

func TestStatusCanAdvanceTo(t *testing.T) {
	cases := []struct {
		from    IssueStatus
		to      IssueStatus
		allowed bool
	}{
		{UnderReview, InProgress, true},
		{InProgress, Completed, true},
		{UnderReview, Completed, false}, // no stage skipping
		{InProgress, UnderReview, false},
		{Completed, InProgress, false},
		{Completed, UnderReview, false},
		{UnderReview, UnderReview, false},
		{Completed, Completed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanAdvanceTo(tc.to),
			"transition %q -> %q", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("Under Review"))
	assert.True(t, ValidStatus("In Progress"))
	assert.True(t, ValidStatus("Completed"))
	assert.False(t, ValidStatus("Pending"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("completed"))
}

func TestValidCategory(t *testing.T) {
	for _, cat := range []string{"general", "infrastructure", "safety", "cleanliness", "environment"} {
		assert.True(t, ValidCategory(cat), cat)
	}
	assert.False(t, ValidCategory("General"))
	assert.False(t, ValidCategory("roads"))
	assert.False(t, ValidCategory(""))
}
