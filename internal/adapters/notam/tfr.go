package notam

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/api"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

const tfrListPath = "/tfrapi/exportTfrList"

// TFRSource reads the national TFR list. TFRs are not keyed by airport, so a TFR
// is attributed to every requested airport whose identifier appears in its text.
type TFRSource struct {
	client *api.Client
}

func NewTFRSource(client *api.Client) *TFRSource {
	return &TFRSource{client: client}
}

var _ environment.NotamSource = (*TFRSource)(nil)

func (s *TFRSource) Name() string { return SourceTFR }

type tfrEntry struct {
	NotamID     string `json:"notam_id"`
	Facility    string `json:"facility"`
	State       string `json:"state"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (s *TFRSource) FetchNotams(ctx context.Context, icaos []string, _ environment.TimeWindow) ([]environment.RawNotam, error) {
	var entries []tfrEntry
	if err := s.client.GetJSON(ctx, tfrListPath, nil, &entries); err != nil {
		return nil, fmt.Errorf("tfr list: %w", err)
	}

	matchers := make(map[string]*regexp.Regexp, len(icaos))
	for _, icao := range icaos {
		matchers[icao] = identifierPattern(icao)
	}

	var out []environment.RawNotam
	for _, e := range entries {
		text := strings.ToUpper(e.Description + " " + e.Facility)
		for _, icao := range icaos {
			if !matchers[icao].MatchString(text) {
				continue
			}
			out = append(out, environment.RawNotam{
				NotamID: "TFR-" + e.NotamID + "-" + icao,
				ICAO:    icao,
				Text:    strings.TrimSpace(fmt.Sprintf("TFR %s %s", e.Type, e.Description)),
				Source:  SourceTFR,
			})
		}
	}
	return out, nil
}

// identifierPattern matches the ICAO code, or the FAA 3-letter id for K-prefixed US airports
func identifierPattern(icao string) *regexp.Regexp {
	ids := []string{regexp.QuoteMeta(icao)}
	if len(icao) == 4 && strings.HasPrefix(icao, "K") {
		ids = append(ids, regexp.QuoteMeta(icao[1:]))
	}
	return regexp.MustCompile(`\b(` + strings.Join(ids, "|") + `)\b`)
}
