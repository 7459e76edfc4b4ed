package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sensorCSV = "Time;TT301 °C;TT302 °C;TT303 °C;FT240;PI177 bar;PT230 bar\n" +
	"2024-06-25 10:00:00;450,5;460;470;1,2;2,5;1,0\n" +
	";;;;;;\n" +
	"2024-06-25 10:01:00;451;461;471;1,3;2,75;1,25\n" +
	"2024-06-25 10:02:00;452;462;472;1,4;3;1,5\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadSensorCSVEncodings(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(sensorCSV)
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		encoding string
	}{
		{"utf8", []byte(sensorCSV), "utf-8"},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, sensorCSV...), "utf-8-sig"},
		{"latin1", []byte(latin1), "latin-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := ReadSensorCSV(writeFile(t, "pignat.csv", tt.data))
			require.NoError(t, err)

			assert.Equal(t, tt.encoding, log.Encoding)
			assert.Equal(t, ";", log.Delimiter)
			assert.Equal(t, SensorTime, log.Table.Columns[0])
			assert.True(t, log.Table.Has(SensorTT301))
			assert.Equal(t, 3, log.Table.Len(), "blank records are dropped")

			f, ok := log.Table.Get(0, SensorTT301).Float()
			require.True(t, ok)
			assert.Equal(t, 450.5, f)
		})
	}
}

func TestReadSensorCSVEmpty(t *testing.T) {
	_, err := ReadSensorCSV(writeFile(t, "empty.csv", nil))
	assert.ErrorIs(t, err, models.ErrBlockNotRecognized)

	_, err = ReadSensorCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("a;b;c\n1,5;2;3"))
	assert.Equal(t, ',', DetectDelimiter("a,b;c\n1;2;3"))
	assert.Equal(t, ',', DetectDelimiter(""))
}

func loadSensorLog(t *testing.T) *models.SensorLog {
	t.Helper()
	log, err := ReadSensorCSV(writeFile(t, "pignat.csv", []byte(sensorCSV)))
	require.NoError(t, err)
	return log
}

func TestSensorSections(t *testing.T) {
	log := loadSensorLog(t)
	for _, s := range SensorSections(log) {
		assert.True(t, s.Available, s.Name)
	}

	partial := *log
	partial.Table = log.Table.Select(SensorTime, SensorTT301, SensorTT302, SensorTT303, SensorFT240)
	sections := SensorSections(&partial)
	require.Len(t, sections, len(SensorMetrics))
	assert.True(t, sections[0].Available)
	assert.False(t, sections[4].Available)
	assert.Contains(t, sections[4].Reason, SensorPI177)
}

func TestMetricTable(t *testing.T) {
	log := loadSensorLog(t)

	m, ok := LookupSensorMetric(MetricTemperature)
	require.True(t, ok)
	tbl, err := MetricTable(log, m)
	require.NoError(t, err)
	assert.Equal(t, []string{SensorTime, SensorTT301, SensorTT302, SensorTT303}, tbl.Columns)

	m, _ = LookupSensorMetric(MetricDeltaPressure)
	tbl, err = MetricTable(log, m)
	require.NoError(t, err)
	assert.Equal(t, []string{SensorTime, DeltaPressureColumn}, tbl.Columns)
	for i, want := range []float64{1.5, 1.5, 1.5} {
		assert.InDelta(t, want, tbl.Get(i, DeltaPressureColumn).Num, 1e-9)
	}
	assert.False(t, log.Table.Has(DeltaPressureColumn), "the source log is left untouched")

	_, ok = LookupSensorMetric("unknown")
	assert.False(t, ok)
}

func TestSensorTimeRange(t *testing.T) {
	log := loadSensorLog(t)

	r, err := SensorTimeRange(log)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-25 10:00:00", r.Start)
	assert.Equal(t, "2024-06-25 10:02:00", r.End)

	tests := []struct {
		name string
		r    models.TimeRange
		want int
	}{
		{"open", models.TimeRange{}, 3},
		{"from", models.TimeRange{Start: "2024-06-25 10:01:00"}, 2},
		{"until", models.TimeRange{End: "2024-06-25 10:01:00"}, 2},
		{"clock only", models.TimeRange{Start: "10:00:30", End: "10:01:30"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SensorBetween(log, tt.r).Table.Len())
		})
	}
}
