package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Status Policy Tests
// ============================================================================

func TestLegalTargets_ExcludesCurrentAndHasThreeEntries(t *testing.T) {
	for _, s := range AllStatuses {
		targets := LegalTargets(s)
		assert.Len(t, targets, 3, "targets for %s", s)
		assert.NotContains(t, targets, s)
		for _, target := range targets {
			assert.True(t, IsValidTransition(s, target), "%s -> %s", s, target)
		}
	}
}

func TestLegalTargets_KeepsDeclarationOrder(t *testing.T) {
	assert.Equal(t, []Status{StatusToStart, StatusLate, StatusDone}, LegalTargets(StatusInProgress))
}

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		target  Status
		want    bool
		wantErr error
	}{
		{"forward", StatusToStart, StatusInProgress, true, nil},
		{"backward", StatusDone, StatusToStart, true, nil},
		{"to late", StatusInProgress, StatusLate, true, nil},
		{"no-op", StatusLate, StatusLate, false, ErrNoOpTransition},
		{"unknown target", StatusToStart, Status("ARCHIVED"), false, ErrUnknownStatus},
		{"empty target", StatusToStart, Status(""), false, ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTransition(tt.current, tt.target))
			err := CheckTransition(tt.current, tt.target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"TO_START", StatusToStart},
		{"in-progress", StatusInProgress},
		{"in progress", StatusInProgress},
		{" late ", StatusLate},
		{"done", StatusDone},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStatus("finished")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatus_TitleAndIndex(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Title())
	assert.Equal(t, "WEIRD", Status("WEIRD").Title())
	assert.Equal(t, 3, StatusDone.Index())
	assert.Equal(t, -1, Status("WEIRD").Index())
}

// ============================================================================
// Project Tests
// ============================================================================

func TestProject_CloneDoesNotAlias(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := Project{
		ID:           1,
		Name:         "Website",
		Status:       StatusToStart,
		Responsibles: []ResponsibleRef{{ID: 7, Name: "Ana"}},
		PlannedStart: &start,
	}

	c := p.Clone()
	c.Responsibles[0].Name = "Bruno"
	*c.PlannedStart = start.AddDate(0, 0, 5)

	assert.Equal(t, "Ana", p.Responsibles[0].Name)
	assert.Equal(t, start, *p.PlannedStart)
}

// ============================================================================
// Date Helper Tests
// ============================================================================

func TestDates(t *testing.T) {
	d, err := ParseDate("2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", FormatDate(d))

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, empty)
	assert.Equal(t, "", FormatDate(nil))

	_, err = ParseDate("10/02/2026")
	assert.Error(t, err)

	late := time.Date(2026, 2, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 5, DaysBetween(*d, late))
	assert.Equal(t, -5, DaysBetween(late, *d))
}
