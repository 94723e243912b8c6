package weather

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/api"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

const metarPath = "/api/data/metar"

// maxStationsPerRequest keeps the ids query short enough for the upstream
const maxStationsPerRequest = 50

// MetarClient fetches current METARs from the aviationweather.gov data API
type MetarClient struct {
	client *api.Client
	logger *slog.Logger
}

// NewMetarClient wraps an upstream client pointed at aviationweather.gov
func NewMetarClient(client *api.Client, logger *slog.Logger) *MetarClient {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MetarClient{client: client, logger: logger}
}

var _ environment.WeatherProvider = (*MetarClient)(nil)

type metarCloud struct {
	Cover string `json:"cover"`
	Base  *int   `json:"base"`
}

type metarDTO struct {
	ICAOID     string       `json:"icaoId"`
	ReportTime string       `json:"reportTime"`
	ObsTime    int64        `json:"obsTime"`
	Temp       *float64     `json:"temp"`
	Dewp       *float64     `json:"dewp"`
	Wdir       any          `json:"wdir"`
	Wspd       *int         `json:"wspd"`
	Wgst       *int         `json:"wgst"`
	Visib      any          `json:"visib"`
	WxString   string       `json:"wxString"`
	RawOb      string       `json:"rawOb"`
	FltCat     string       `json:"fltCat"`
	Clouds     []metarCloud `json:"clouds"`
}

// FetchReports returns one report per station that has a current METAR.
// Stations without one are simply absent.
func (c *MetarClient) FetchReports(ctx context.Context, icaos []string) ([]environment.StationReport, error) {
	var reports []environment.StationReport
	for start := 0; start < len(icaos); start += maxStationsPerRequest {
		end := min(start+maxStationsPerRequest, len(icaos))

		query := url.Values{}
		query.Set("ids", strings.Join(icaos[start:end], ","))
		query.Set("format", "json")

		var dtos []metarDTO
		if err := c.client.GetJSON(ctx, metarPath, query, &dtos); err != nil {
			return reports, fmt.Errorf("failed to fetch metars: %w", err)
		}
		for _, dto := range dtos {
			reports = append(reports, toStationReport(dto))
		}
	}

	c.logger.Debug("metars fetched", "requested", len(icaos), "received", len(reports))
	return reports, nil
}

func toStationReport(dto metarDTO) environment.StationReport {
	r := environment.StationReport{
		ICAO:           strings.ToUpper(dto.ICAOID),
		Raw:            dto.RawOb,
		FlightCategory: dto.FltCat,
		TempC:          dto.Temp,
		DewpointC:      dto.Dewp,
		WxString:       dto.WxString,
		CeilingFt:      ceilingFromClouds(dto.Clouds),
		VisibilitySM:   parseVisibility(dto.Visib),
		WindDirDeg:     parseWindDir(dto.Wdir),
	}
	if dto.Wspd != nil {
		r.WindKts = *dto.Wspd
	}
	if dto.Wgst != nil {
		r.GustKts = *dto.Wgst
	}
	switch {
	case dto.ObsTime > 0:
		r.ObservedAt = time.Unix(dto.ObsTime, 0).UTC()
	case dto.ReportTime != "":
		r.ObservedAt = parseReportTime(dto.ReportTime)
	}
	return r
}

// reportTimeLayouts are tried in order; zone-less values are UTC
var reportTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
}

func parseReportTime(s string) time.Time {
	s = strings.Replace(strings.TrimSpace(s), " ", "T", 1)
	for _, layout := range reportTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ceilingFromClouds returns the lowest broken or overcast layer
func ceilingFromClouds(clouds []metarCloud) *int {
	var ceiling *int
	for _, cl := range clouds {
		cover := strings.ToUpper(cl.Cover)
		if cover != "BKN" && cover != "OVC" && cover != "OVX" {
			continue
		}
		if cl.Base == nil {
			continue
		}
		if ceiling == nil || *cl.Base < *ceiling {
			base := *cl.Base
			ceiling = &base
		}
	}
	return ceiling
}

// parseVisibility accepts numbers and strings like "10+" or "1/2"
func parseVisibility(v any) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(val), "+")
		if num, den, ok := strings.Cut(s, "/"); ok {
			n, err1 := strconv.ParseFloat(num, 64)
			d, err2 := strconv.ParseFloat(den, 64)
			if err1 != nil || err2 != nil || d == 0 {
				return nil
			}
			f := n / d
			return &f
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// parseWindDir returns nil for variable ("VRB") or missing directions
func parseWindDir(v any) *int {
	switch val := v.(type) {
	case float64:
		d := int(val)
		return &d
	case string:
		d, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}
