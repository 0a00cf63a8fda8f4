package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Status_Valid(t *testing.T) {
	for _, status := range Statuses {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
	}

	assert.False(t, Status("").Valid())
	assert.False(t, Status("ghosted").Valid())
	assert.False(t, Status("Applied").Valid(), "statuses are case-sensitive")
}

func Test_Status_IsTerminal(t *testing.T) {
	terminal := []Status{StatusRejected, StatusWithdrawn, StatusAccepted}
	open := []Status{StatusApplied, StatusInterviewing, StatusOffered}

	for _, status := range terminal {
		assert.True(t, status.IsTerminal(), "%q should be terminal", status)
	}
	for _, status := range open {
		assert.False(t, status.IsTerminal(), "%q should not be terminal", status)
	}
}

func Test_JobType_Valid(t *testing.T) {
	for _, jobType := range JobTypes {
		assert.True(t, jobType.Valid())
	}
	assert.False(t, JobType("freelance").Valid())
}

func Test_Priority_Valid(t *testing.T) {
	for _, priority := range Priorities {
		assert.True(t, priority.Valid())
	}
	assert.False(t, Priority("urgent").Valid())
}

func Test_InterviewType_Valid(t *testing.T) {
	for _, interviewType := range InterviewTypes {
		assert.True(t, interviewType.Valid())
	}
	assert.False(t, InterviewType("video").Valid())
}
