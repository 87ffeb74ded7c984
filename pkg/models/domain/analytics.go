package domain

// FailureReason classifies why the analytics read failed.
type FailureReason string

const (
	FailureStoreUnavailable FailureReason = "store_unavailable"
	FailureQueryFailed      FailureReason = "query_failed"
	FailureUnknown          FailureReason = "unknown"
)

const AnalyticsFailureMessage = "Failed to fetch dashboard data"

// AnalyticsResult is either AnalyticsSuccess or AnalyticsFailure.
type AnalyticsResult interface {
	analyticsResult()
}

type AnalyticsSuccess struct {
	Resources []Resource
}

type AnalyticsFailure struct {
	Reason  FailureReason
	Message string
	Err     error
}

func (AnalyticsSuccess) analyticsResult() {}
func (AnalyticsFailure) analyticsResult() {}

func (f AnalyticsFailure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f AnalyticsFailure) Unwrap() error {
	return f.Err
}
