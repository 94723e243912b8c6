package notam

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/api"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

const aimSearchPath = "/notamSearch/search"

// AIMSource queries the public notams.aim.faa.gov location search
type AIMSource struct {
	client *api.Client
}

func NewAIMSource(client *api.Client) *AIMSource {
	return &AIMSource{client: client}
}

var _ environment.NotamSource = (*AIMSource)(nil)

func (s *AIMSource) Name() string { return SourceAIM }

type aimResponse struct {
	NotamList []struct {
		NotamNumber        string `json:"notamNumber"`
		TransactionID      int64  `json:"transactionID"`
		ICAOID             string `json:"icaoId"`
		FacilityDesignator string `json:"facilityDesignator"`
		ICAOMessage        string `json:"icaoMessage"`
		TraditionalMessage string `json:"traditionalMessage"`
		StartDate          string `json:"startDate"`
		EndDate            string `json:"endDate"`
	} `json:"notamList"`
}

// FetchNotams issues a single search for all locations
func (s *AIMSource) FetchNotams(ctx context.Context, icaos []string, _ environment.TimeWindow) ([]environment.RawNotam, error) {
	query := url.Values{}
	query.Set("searchType", "0")
	query.Set("designatorsForLocation", strings.Join(icaos, ","))
	query.Set("notamsOnly", "false")

	var resp aimResponse
	if err := s.client.GetJSON(ctx, aimSearchPath, query, &resp); err != nil {
		return nil, fmt.Errorf("aim notam search: %w", err)
	}

	out := make([]environment.RawNotam, 0, len(resp.NotamList))
	for _, n := range resp.NotamList {
		text := n.TraditionalMessage
		if text == "" {
			text = n.ICAOMessage
		}
		id := n.NotamNumber
		if id == "" && n.TransactionID != 0 {
			id = fmt.Sprintf("AIM-%d", n.TransactionID)
		}
		out = append(out, environment.RawNotam{
			NotamID:        id,
			ICAO:           n.ICAOID,
			Text:           strings.TrimSpace(text),
			Source:         SourceAIM,
			EffectiveStart: parseTime(n.StartDate),
			EffectiveEnd:   parseTime(n.EndDate),
		})
	}
	return out, nil
}
