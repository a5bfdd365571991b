package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOutcomesAreWriteOnce(t *testing.T) {
	rec := NewRecord("profile", "letter")

	require.NoError(t, rec.setEligibility(Positive("tech")))
	assert.ErrorIs(t, rec.setEligibility(Negative("later")), ErrAlreadySet)
	assert.Equal(t, StatusPositive, rec.Eligibility.Status)

	require.NoError(t, rec.setCategory(CategoryTech))
	assert.ErrorIs(t, rec.setCategory(CategorySales), ErrAlreadySet)
	assert.Equal(t, CategoryTech, rec.Category)

	require.NoError(t, rec.setRoleFit(Positive("")))
	assert.ErrorIs(t, rec.setRoleFit(Positive("")), ErrAlreadySet)

	require.NoError(t, rec.setCulturalFit(Negative("nope")))
	assert.ErrorIs(t, rec.setCulturalFit(Positive("")), ErrAlreadySet)

	require.NoError(t, rec.setNotification("hello"))
	assert.ErrorIs(t, rec.setNotification("again"), ErrAlreadySet)
	assert.Equal(t, "hello", rec.Notification)
}

func TestRecordScheduleIsMutuallyExclusive(t *testing.T) {
	rec := NewRecord("profile", "letter")

	assert.Error(t, rec.setSchedule("", ""), "neither field set")
	assert.Error(t, rec.setSchedule("details", "unavailable"), "both fields set")

	require.NoError(t, rec.setSchedule("details", ""))
	assert.Equal(t, "details", rec.InterviewDetails)
	assert.Empty(t, rec.Unavailable)

	assert.ErrorIs(t, rec.setSchedule("", "busy"), ErrAlreadySet)
}

func TestRecordScheduleUnavailable(t *testing.T) {
	rec := NewRecord("profile", "letter")

	require.NoError(t, rec.setSchedule("", "busy"))
	assert.Empty(t, rec.InterviewDetails)
	assert.Equal(t, "busy", rec.Unavailable)
}
