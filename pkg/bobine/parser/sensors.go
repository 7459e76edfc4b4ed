package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Pyrolysis sensor columns.
const (
	SensorTime  = "Time"
	SensorTT301 = "TT301 °C"
	SensorTT302 = "TT302 °C"
	SensorTT303 = "TT303 °C"
	SensorFT240 = "FT240"
	SensorPI177 = "PI177 bar"
	SensorPT230 = "PT230 bar"
)

// Pyrolysis metric names.
const (
	MetricTemperature     = "Température par rapport au temps"
	MetricFlow            = "Réponsse débimétrique par rapport au temps"
	MetricReactorPressure = "Pression pyrolyseur par rapport au temps"
	MetricPumpPressure    = "Pression sortie pompe par rapport au temps"
	MetricDeltaPressure   = "Delta de pression entre le pyrilyseur et la pompe"
)

// DeltaPressureColumn names the derived PI177 minus PT230 series.
var DeltaPressureColumn = "Delta_Pression_" + SensorPI177 + "_minus_" + SensorPT230

// SensorMetric is one chartable view of the sensor log.
type SensorMetric struct {
	Name     string
	Requires []string
	Series   []string
}

// SensorMetrics is the catalogue of pyrolysis views.
var SensorMetrics = []SensorMetric{
	{Name: MetricTemperature, Requires: []string{SensorTime, SensorTT301, SensorTT302, SensorTT303}, Series: []string{SensorTT301, SensorTT302, SensorTT303}},
	{Name: MetricFlow, Requires: []string{SensorTime, SensorFT240}, Series: []string{SensorFT240}},
	{Name: MetricReactorPressure, Requires: []string{SensorTime, SensorPI177}, Series: []string{SensorPI177}},
	{Name: MetricPumpPressure, Requires: []string{SensorTime, SensorPT230}, Series: []string{SensorPT230}},
	{Name: MetricDeltaPressure, Requires: []string{SensorTime, SensorPI177, SensorPT230}, Series: []string{DeltaPressureColumn}},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type encodingCandidate struct {
	name   string
	accept func([]byte) bool
	enc    encoding.Encoding
}

// encodingCandidates are tried in order; the first accepting one decodes.
var encodingCandidates = []encodingCandidate{
	{"utf-8", func(b []byte) bool { return !bytes.HasPrefix(b, utf8BOM) && utf8.Valid(b) }, unicode.UTF8},
	{"utf-8-sig", func(b []byte) bool { return bytes.HasPrefix(b, utf8BOM) && utf8.Valid(b) }, unicode.UTF8BOM},
	{"latin-1", func([]byte) bool { return true }, charmap.ISO8859_1},
	{"windows-1252", func([]byte) bool { return true }, charmap.Windows1252},
}

// ReadSensorCSV loads a pyrolysis sensor export, detecting its encoding
// and field separator.
func ReadSensorCSV(path string) (*models.SensorLog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, name, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	delim := DetectDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", models.ErrBlockNotRecognized, path)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = models.TrimCell(strings.TrimPrefix(h, "\ufeff"))
	}
	tbl := models.NewTable(header...)
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make([]models.Value, len(header))
		for i := 0; i < len(header) && i < len(rec); i++ {
			row[i] = models.ParseValue(rec[i])
		}
		tbl.Append(row...)
	}
	return &models.SensorLog{Path: path, Encoding: name, Delimiter: string(delim), Table: tbl}, nil
}

func decodeText(raw []byte) (string, string, error) {
	var lastErr error
	for _, c := range encodingCandidates {
		if !c.accept(raw) {
			continue
		}
		out, err := c.enc.NewDecoder().Bytes(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return string(out), c.name, nil
	}
	return "", "", lastErr
}

// DetectDelimiter picks ';' when the first line holds more semicolons
// than commas, ',' otherwise.
func DetectDelimiter(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// SensorSections reports which metrics the log supports.
func SensorSections(log *models.SensorLog) []models.Section {
	out := make([]models.Section, 0, len(SensorMetrics))
	for _, m := range SensorMetrics {
		s := models.Section{Name: m.Name, Available: true}
		var missing []string
		for _, c := range m.Requires {
			if log == nil || !log.Table.Has(c) {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			s.Available = false
			s.Reason = "missing columns: " + strings.Join(missing, ", ")
		}
		out = append(out, s)
	}
	return out
}

// LookupSensorMetric returns the catalogue entry called name.
func LookupSensorMetric(name string) (SensorMetric, bool) {
	for _, m := range SensorMetrics {
		if m.Name == name {
			return m, true
		}
	}
	return SensorMetric{}, false
}

// MetricTable returns the time column and the series of metric m.
func MetricTable(log *models.SensorLog, m SensorMetric) (*models.Table, error) {
	for _, c := range m.Requires {
		if !log.Table.Has(c) {
			return nil, fmt.Errorf("%w: column %q missing from %s", models.ErrBlockNotRecognized, c, log.Path)
		}
	}
	if m.Name != MetricDeltaPressure {
		return log.Table.Select(append([]string{SensorTime}, m.Series...)...), nil
	}
	delta := log.Table.WithColumn(DeltaPressureColumn, func(i int, _ models.Row) models.Value {
		a, ok1 := log.Table.Get(i, SensorPI177).Float()
		b, ok2 := log.Table.Get(i, SensorPT230).Float()
		if !ok1 || !ok2 {
			return models.Empty()
		}
		return models.Number(a - b)
	})
	return delta.Select(SensorTime, DeltaPressureColumn), nil
}

// SensorTimeRange returns the first and last non-empty time stamps.
func SensorTimeRange(log *models.SensorLog) (models.TimeRange, error) {
	var r models.TimeRange
	if log == nil || !log.Table.Has(SensorTime) {
		return r, fmt.Errorf("%w: no %q column", models.ErrBlockNotRecognized, SensorTime)
	}
	for _, v := range log.Table.Column(SensorTime) {
		if v.IsEmpty() {
			continue
		}
		if r.Start == "" {
			r.Start = v.Text()
		}
		r.End = v.Text()
	}
	if r.Start == "" {
		return r, fmt.Errorf("%w: %q column is empty", models.ErrBlockNotRecognized, SensorTime)
	}
	return r, nil
}

// SensorBetween returns a copy of the log restricted to rows whose time
// lies within r, bounds included. An empty bound is open.
func SensorBetween(log *models.SensorLog, r models.TimeRange) *models.SensorLog {
	if r.IsZero() || !log.Table.Has(SensorTime) {
		return log
	}
	j := log.Table.Index(SensorTime)
	out := *log
	out.Table = log.Table.Filter(func(_ int, row models.Row) bool {
		t := row[j].Text()
		if r.Start != "" && compareStamps(t, r.Start) < 0 {
			return false
		}
		if r.End != "" && compareStamps(t, r.End) > 0 {
			return false
		}
		return true
	})
	return &out
}

var stampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

func parseStamp(s string) (time.Time, bool) {
	for _, l := range stampLayouts {
		if t, err := time.Parse(l, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareStamps orders two time stamps: as full dates when both carry
// one, by time of day otherwise, and textually as a last resort.
func compareStamps(a, b string) int {
	ta, okA := parseStamp(a)
	tb, okB := parseStamp(b)
	if okA && okB {
		return ta.Compare(tb)
	}
	ca, okA := ClockSeconds(StandardizeTime(models.Text(a)))
	cb, okB := ClockSeconds(StandardizeTime(models.Text(b)))
	if okA && okB {
		return ca - cb
	}
	return strings.Compare(a, b)
}
