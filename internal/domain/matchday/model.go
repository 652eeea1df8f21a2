package matchday

import (
	"fmt"
	"time"
)

// Matchday is one scheduled block of fixtures sharing a transfer deadline.
type Matchday struct {
	ID               string
	Number           int
	Season           string
	StartDate        time.Time
	EndDate          time.Time
	Deadline         time.Time
	IsActive         bool
	IsFinished       bool
	PointsCalculated bool
}

func (m Matchday) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("matchday id is required")
	}
	if m.Number <= 0 {
		return fmt.Errorf("matchday number must be greater than zero")
	}
	if m.Season == "" {
		return fmt.Errorf("matchday season is required")
	}
	if m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("matchday end date precedes start date")
	}
	return nil
}

// Locked reports whether transfers are closed: true once now reaches the
// deadline. Both operands are normalized to UTC because persisted timestamps
// may arrive timezone-naive.
func (m Matchday) Locked(now time.Time) bool {
	return !now.UTC().Before(m.Deadline.UTC())
}

// TimeUntilDeadline renders the remaining window for display: days+hours above
// one day, hours+minutes between one hour and one day, minutes below one hour,
// and a fixed sentinel once locked.
func (m Matchday) TimeUntilDeadline(now time.Time) string {
	remaining := m.Deadline.UTC().Sub(now.UTC())
	if remaining <= 0 {
		return "deadline passed"
	}

	switch {
	case remaining > 24*time.Hour:
		days := int(remaining / (24 * time.Hour))
		hours := int(remaining%(24*time.Hour)) / int(time.Hour)
		return fmt.Sprintf("%dd %dh", days, hours)
	case remaining >= time.Hour:
		hours := int(remaining / time.Hour)
		minutes := int(remaining%time.Hour) / int(time.Minute)
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		minutes := int(remaining / time.Minute)
		return fmt.Sprintf("%dm", minutes)
	}
}
