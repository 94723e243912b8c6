package dataimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// Required header columns; the remaining ones are optional
var requiredColumns = []string{"icao", "name", "latitude", "longitude"}

// RowError describes a CSV row that could not be converted
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ParseAirportsCSV reads airports from a header-addressed CSV.
//
// Columns: icao,name,city,country_prefix,latitude,longitude,elevation_ft,longest_runway_ft,
// has_fuel,fuel_types,fuel_price_usd_gal,fbo_fee_usd,operating_hours,curfew,customs,deicing,
// slot_required. fuel_types is ';'-separated, time windows are "HH:MM-HH:MM".
// Bad rows are reported and skipped; a malformed header fails the whole file.
func ParseAirportsCSV(r io.Reader) ([]*airport.Airport, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty airport file")
		}
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var (
		airports []*airport.Airport
		rowErrs  []RowError
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rowErrs = append(rowErrs, RowError{Line: perr.Line, Err: perr.Err})
				continue
			}
			return airports, rowErrs, fmt.Errorf("failed to read airport file: %w", err)
		}
		line, _ := reader.FieldPos(0)

		a, err := parseRow(row{record: record, index: index})
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		airports = append(airports, a)
	}

	return airports, rowErrs, nil
}

type row struct {
	record []string
	index  map[string]int
}

func (r row) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r row) float(col string) (float64, error) {
	v := r.get(col)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return f, nil
}

func (r row) int(col string) (int, error) {
	v := r.get(col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return n, nil
}

func (r row) bool(col string) (bool, error) {
	v := r.get(col)
	if v == "" {
		return false, nil
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", col, err)
	}
	return b, nil
}

func (r row) window(col string) (*airport.TimeWindow, error) {
	v := r.get(col)
	if v == "" {
		return nil, nil
	}
	from, to, ok := strings.Cut(v, "-")
	if !ok {
		return nil, fmt.Errorf("%s: want HH:MM-HH:MM, got %q", col, v)
	}
	return &airport.TimeWindow{From: strings.TrimSpace(from), To: strings.TrimSpace(to)}, nil
}

func parseRow(r row) (*airport.Airport, error) {
	a := &airport.Airport{
		ICAO:          airport.NormalizeICAO(r.get("icao")),
		Name:          r.get("name"),
		City:          r.get("city"),
		CountryPrefix: strings.ToUpper(r.get("country_prefix")),
	}

	var err error
	if a.Latitude, err = r.float("latitude"); err != nil {
		return nil, err
	}
	if a.Longitude, err = r.float("longitude"); err != nil {
		return nil, err
	}
	if a.ElevationFt, err = r.int("elevation_ft"); err != nil {
		return nil, err
	}
	if a.LongestRunwayFt, err = r.int("longest_runway_ft"); err != nil {
		return nil, err
	}
	if a.HasFuel, err = r.bool("has_fuel"); err != nil {
		return nil, err
	}
	if a.FuelPriceUSDGal, err = r.float("fuel_price_usd_gal"); err != nil {
		return nil, err
	}
	if a.FBOFeeUSD, err = r.float("fbo_fee_usd"); err != nil {
		return nil, err
	}
	if a.OperatingHours, err = r.window("operating_hours"); err != nil {
		return nil, err
	}
	if a.Curfew, err = r.window("curfew"); err != nil {
		return nil, err
	}
	if a.CustomsAvailable, err = r.bool("customs"); err != nil {
		return nil, err
	}
	if a.DeicingAvailable, err = r.bool("deicing"); err != nil {
		return nil, err
	}
	if a.SlotRequired, err = r.bool("slot_required"); err != nil {
		return nil, err
	}

	for _, ft := range strings.Split(r.get("fuel_types"), ";") {
		if ft = strings.ToUpper(strings.TrimSpace(ft)); ft != "" {
			a.FuelTypes = append(a.FuelTypes, ft)
		}
	}
	if a.CountryPrefix == "" && len(a.ICAO) == 4 {
		a.CountryPrefix = a.ICAO[:1]
		if a.ICAO[0] != 'K' {
			a.CountryPrefix = a.ICAO[:2]
		}
	}

	return a, nil
}
