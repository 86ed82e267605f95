package models

import "strings"

// Status is the lifecycle state of a project. The set is closed; the
// declaration order below is the display order of the board columns and
// implies nothing about workflow sequence.
type Status string

const (
	StatusToStart    Status = "TO_START"
	StatusInProgress Status = "IN_PROGRESS"
	StatusLate       Status = "LATE"
	StatusDone       Status = "DONE"
)

// AllStatuses lists every status in declaration order.
var AllStatuses = []Status{StatusToStart, StatusInProgress, StatusLate, StatusDone}

var statusTitles = map[Status]string{
	StatusToStart:    "To Start",
	StatusInProgress: "In Progress",
	StatusLate:       "Late",
	StatusDone:       "Done",
}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Title returns the human readable column title for the status.
func (s Status) Title() string {
	if title, ok := statusTitles[s]; ok {
		return title
	}
	return string(s)
}

// Index returns the declaration position of the status, or -1 if unknown.
func (s Status) Index() int {
	for i, candidate := range AllStatuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ParseStatus accepts the canonical form ("IN_PROGRESS") as well as the
// relaxed forms users type on the command line ("in-progress", "in progress").
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	s := Status(normalized)
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// LegalTargets returns every status a project in current may move to.
// There is no forward-only ordering: all other statuses are reachable.
func LegalTargets(current Status) []Status {
	targets := make([]Status, 0, len(AllStatuses)-1)
	for _, s := range AllStatuses {
		if s != current {
			targets = append(targets, s)
		}
	}
	return targets
}

// IsValidTransition is true iff target is a recognized status distinct from current.
func IsValidTransition(current, target Status) bool {
	return CheckTransition(current, target) == nil
}

// CheckTransition explains why a transition is not valid.
// Returns nil, ErrUnknownStatus or ErrNoOpTransition.
func CheckTransition(current, target Status) error {
	if !target.Valid() {
		return ErrUnknownStatus
	}
	if target == current {
		return ErrNoOpTransition
	}
	return nil
}
