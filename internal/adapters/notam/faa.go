package notam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/api"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

const (
	SourceFAA = "faa"
	SourceAIM = "aim"
	SourceTFR = "tfr"
)

const faaPageSize = 1000

// FAASource queries the FAA NOTAM API one location at a time.
// The client must carry the client_id and client_secret headers.
type FAASource struct {
	client *api.Client
}

func NewFAASource(client *api.Client) *FAASource {
	return &FAASource{client: client}
}

var _ environment.NotamSource = (*FAASource)(nil)

func (s *FAASource) Name() string { return SourceFAA }

type faaResponse struct {
	Items []struct {
		Properties struct {
			CoreNOTAMData struct {
				Notam struct {
					ID             string `json:"id"`
					Number         string `json:"number"`
					ICAOLocation   string `json:"icaoLocation"`
					Location       string `json:"location"`
					EffectiveStart string `json:"effectiveStart"`
					EffectiveEnd   string `json:"effectiveEnd"`
					Text           string `json:"text"`
					Classification string `json:"classification"`
				} `json:"notam"`
			} `json:"coreNOTAMData"`
		} `json:"properties"`
	} `json:"items"`
}

// FetchNotams returns whatever was collected before the first failing location
func (s *FAASource) FetchNotams(ctx context.Context, icaos []string, window environment.TimeWindow) ([]environment.RawNotam, error) {
	var out []environment.RawNotam
	for _, icao := range icaos {
		query := url.Values{}
		query.Set("icaoLocation", icao)
		query.Set("pageSize", strconv.Itoa(faaPageSize))
		query.Set("effectiveStartDate", window.Start.UTC().Format(isoLayout))
		query.Set("effectiveEndDate", window.End.UTC().Format(isoLayout))

		var resp faaResponse
		if err := s.client.GetJSON(ctx, "/notams", query, &resp); err != nil {
			return out, fmt.Errorf("faa notams for %s: %w", icao, err)
		}

		for _, item := range resp.Items {
			n := item.Properties.CoreNOTAMData.Notam
			id := n.ID
			if id == "" {
				id = n.Number
			}
			location := n.ICAOLocation
			if location == "" {
				location = icao
			}
			out = append(out, environment.RawNotam{
				NotamID:        id,
				ICAO:           location,
				Text:           n.Text,
				Source:         SourceFAA,
				EffectiveStart: parseTime(n.EffectiveStart),
				EffectiveEnd:   parseTime(n.EffectiveEnd),
			})
		}
	}
	return out, nil
}
