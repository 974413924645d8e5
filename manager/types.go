package manager

// Metric contains a single metric to be reported
type Metric struct {
	Name      string
	Value     float64
	Timestamp int64
	Service   string
}
