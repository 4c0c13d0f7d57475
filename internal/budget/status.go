package budget

// Status is the three-state traffic-light classification of a budget.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// warningThreshold is the percentage above which a budget is flagged as
// approaching its limit. Not configurable per budget.
const warningThreshold = 90.0

// Classify maps actual spend against a budget amount to a consumed
// percentage and status. Exactly 90% is still ok and exactly 100% is
// warning; over requires strictly exceeding the limit.
//
// A zero-amount budget is defined as 0% / ok regardless of spend, which
// also avoids dividing by zero.
func Classify(actualSpend, amount int64) (percentage float64, status Status) {
	if amount > 0 {
		percentage = float64(actualSpend) / float64(amount) * 100
	}

	switch {
	case percentage > 100:
		status = StatusOver
	case percentage > warningThreshold:
		status = StatusWarning
	default:
		status = StatusOK
	}
	return percentage, status
}
