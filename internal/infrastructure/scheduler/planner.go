package scheduler

import "time"

// Planner exposes spec validation and occurrence computation to the
// application layer
type Planner struct{}

// NewPlanner creates a cron planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Validate checks a cron expression and timezone
func (Planner) Validate(cronExpr, timezone string) error {
	return ValidateSpec(cronExpr, timezone)
}

// Next computes the next fire time after from
func (Planner) Next(cronExpr, timezone string, from time.Time) (time.Time, error) {
	return NextRun(cronExpr, timezone, from)
}
