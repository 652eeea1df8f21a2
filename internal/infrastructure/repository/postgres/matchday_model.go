package postgres

import "time"

type matchdayTableModel struct {
	ID               string    `db:"id"`
	Number           int       `db:"number"`
	Season           string    `db:"season"`
	StartDate        time.Time `db:"start_date"`
	EndDate          time.Time `db:"end_date"`
	Deadline         time.Time `db:"deadline"`
	IsActive         bool      `db:"is_active"`
	IsFinished       bool      `db:"is_finished"`
	PointsCalculated bool      `db:"points_calculated"`
}
