package environment

import "context"

// WeatherProvider returns raw station reports; the result may be partial or empty
type WeatherProvider interface {
	FetchReports(ctx context.Context, icaos []string) ([]StationReport, error)
}

// NotamSource is one upstream NOTAM/TFR feed; the result may be partial or empty
type NotamSource interface {
	Name() string
	FetchNotams(ctx context.Context, icaos []string, window TimeWindow) ([]RawNotam, error)
}
