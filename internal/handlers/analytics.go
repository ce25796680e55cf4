package handlers

import "isoatthetop.com/web/internal/analytics"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GoatCounter analytics.Settings
	Debug       bool
}

// NewAnalytics builds the template settings. An empty code renders no script.
func NewAnalytics(goatCounterCode string, debug bool) Analytics {
	return Analytics{
		GoatCounter: analytics.Settings{Code: goatCounterCode},
		Debug:       debug,
	}
}
