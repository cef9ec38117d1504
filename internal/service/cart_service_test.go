package service

import (
	"testing"
	"time"

	"github.com/soupclass/soup-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCartEntries(t *testing.T) {
	ids, updatedAt := parseCartEntries(map[string]string{
		"7":   "1700000300",
		"3":   "1700000100",
		"12":  "1700000200",
		"abc": "1700000999",
		"-1":  "1700000999",
	})

	assert.Equal(t, []int{3, 12, 7}, ids)
	require.NotNil(t, updatedAt)
	assert.Equal(t, time.Unix(1700000300, 0).UTC(), *updatedAt)
}

func TestParseCartEntries_Empty(t *testing.T) {
	ids, updatedAt := parseCartEntries(map[string]string{})
	assert.Empty(t, ids)
	assert.Nil(t, updatedAt)
}

func TestMissingIDs(t *testing.T) {
	details := []model.CourseScheduleDetail{{CourseScheduleID: 1}, {CourseScheduleID: 3}}
	assert.Equal(t, []int{2, 4}, missingIDs([]int{1, 2, 3, 4}, details))
	assert.Nil(t, missingIDs([]int{1, 3}, details))
}
