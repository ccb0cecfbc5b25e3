package component

const (
	AnalyticsTitle       = "Analytics"
	AnalyticsPlaceholder = "Analytics dashboard content will appear here."
)
