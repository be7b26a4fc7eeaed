package promread

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promcorr/domain/core"
)

func writeDump(t *testing.T, dir, name, payload string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

const sampleDump = `{
  "status": "success",
  "data": {
    "resultType": "matrix",
    "result": [
      {
        "metric": {"instance": "node-a:9100", "job": "node"},
        "values": [[1700000000, "1.5"], [1700000060, "2.5"]]
      },
      {
        "metric": {"instance": "node-b:9100", "job": "node"},
        "values": [[1700000000, "10"], [1700000060, "20"]]
      }
    ]
  }
}`

func TestLoadFile(t *testing.T) {
	path := writeDump(t, t.TempDir(), "dump.json.gz", sampleDump)

	rows, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), rows[0].Time)
	assert.Equal(t, 1.5, rows[0].Value)
	assert.Equal(t, "node-a:9100", rows[0].Labels["instance"])
}

func TestLoadFileMalformedValue(t *testing.T) {
	payload := `{"status":"success","data":{"resultType":"matrix","result":[
		{"metric":{},"values":[[1700000000, "not-a-number"]]}]}}`
	path := writeDump(t, t.TempDir(), "bad.json.gz", payload)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, core.IsMalformedInput(err))
}

func TestLoadFileBareNumberValue(t *testing.T) {
	payload := `{"status":"success","data":{"resultType":"matrix","result":[
		{"metric":{},"values":[[1700000000, 3.25]]}]}}`
	path := writeDump(t, t.TempDir(), "bare.json.gz", payload)

	rows, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.25, rows[0].Value)
}

func TestLoadFileNotGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.json.gz")
	require.NoError(t, os.WriteFile(path, []byte(sampleDump), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, core.IsMalformedInput(err))
}

func TestLoadMetricDirEmpty(t *testing.T) {
	_, err := LoadMetricDir(t.TempDir(), 0)
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestStripPort(t *testing.T) {
	assert.Equal(t, "node-a", StripPort("node-a:9100"))
	assert.Equal(t, "node-a", StripPort("node-a"))
}

func TestFilterInstance(t *testing.T) {
	rows := []Row{
		{Labels: map[string]string{"instance": "Node-A:9100"}},
		{Labels: map[string]string{"instance": "node-b:9100"}},
	}
	filtered := FilterInstance(rows, "node-a")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Node-A:9100", filtered[0].Labels["instance"])

	assert.Len(t, FilterInstance(rows, ""), 2)
}

func TestToSeriesSumsSharedInstants(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	rows := []Row{
		{Time: at, Value: 1.5, Labels: map[string]string{"instance": "a"}},
		{Time: at, Value: 10, Labels: map[string]string{"instance": "b"}},
		{Time: at.Add(time.Minute), Value: 2, Labels: map[string]string{"instance": "a"}},
	}
	s := ToSeries(rows, "merged")
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 11.5, s.Samples[0].Value)
	assert.Equal(t, 2.0, s.Samples[1].Value)
	assert.True(t, s.Samples[0].Time.Before(s.Samples[1].Time))
}

func TestSourceEndToEnd(t *testing.T) {
	dir := t.TempDir()
	metricDir := filepath.Join(dir, "node_load1")
	require.NoError(t, os.MkdirAll(metricDir, 0o755))
	writeDump(t, metricDir, "chunk_000.json.gz", sampleDump)

	source, err := NewSource(16)
	require.NoError(t, err)

	s, err := source.LoadMetricDir(metricDir, 0, "node_load1", "node-a")
	require.NoError(t, err)
	assert.Equal(t, "node_load1", s.Name)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 1.5, s.Samples[0].Value)

	instances, err := source.ListInstances(filepath.Join(metricDir, "chunk_000.json.gz"))
	require.NoError(t, err)
	assert.Equal(t, []string{"node-a", "node-b"}, instances)
}
