package dataset

import (
	"bytes"
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/metrics"
)

func smallPlan() Plan {
	return Plan{
		Algorithms:         []frame.Algorithm{frame.AlgorithmHamming, frame.AlgorithmFletcher16},
		DataSizes:          []int{8, 20},
		ErrorProbabilities: []float64{0, 0.5},
		Iterations:         3,
	}
}

func fixedNow() time.Time { return time.UnixMilli(1700000000000) }

func TestPlan_Cases(t *testing.T) {
	p := smallPlan()
	cases := p.Cases()

	require.Len(t, cases, 2*2*2*3)
	assert.Equal(t, 8, p.Configurations())

	for i, c := range cases {
		assert.Equal(t, i+1, c.TestID)
	}

	// la iteración varía más rápido, el algoritmo más lento
	assert.Equal(t, Case{TestID: 1, Algorithm: frame.AlgorithmHamming, DataSize: 8, ErrorProbability: 0, Iteration: 0}, cases[0])
	assert.Equal(t, Case{TestID: 4, Algorithm: frame.AlgorithmHamming, DataSize: 8, ErrorProbability: 0.5, Iteration: 0}, cases[3])
	assert.Equal(t, Case{TestID: 7, Algorithm: frame.AlgorithmHamming, DataSize: 20, ErrorProbability: 0, Iteration: 0}, cases[6])
	assert.Equal(t, Case{TestID: 24, Algorithm: frame.AlgorithmFletcher16, DataSize: 20, ErrorProbability: 0.5, Iteration: 2}, cases[23])

	seen := map[[3]string]int{}
	for _, c := range cases {
		key := [3]string{string(c.Algorithm), strings.Repeat("x", c.DataSize), strings.Repeat("p", int(c.ErrorProbability*10))}
		seen[key]++
	}
	assert.Len(t, seen, 8)
	for _, n := range seen {
		assert.Equal(t, 3, n)
	}
}

func TestPlan_Validate(t *testing.T) {
	require.NoError(t, DefaultPlan().Validate())
	assert.Equal(t, 2*5*5*100, DefaultPlan().Total())

	bad := []Plan{
		{},
		{Algorithms: []frame.Algorithm{"crc"}, DataSizes: []int{8}, ErrorProbabilities: []float64{0}, Iterations: 1},
		{Algorithms: frame.Algorithms, DataSizes: []int{0}, ErrorProbabilities: []float64{0}, Iterations: 1},
		{Algorithms: frame.Algorithms, DataSizes: []int{8}, ErrorProbabilities: []float64{1.5}, Iterations: 1},
		{Algorithms: frame.Algorithms, DataSizes: []int{8}, ErrorProbabilities: []float64{0}, Iterations: 0},
	}
	for i, p := range bad {
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan, "plan %d", i)
	}
}

func TestGenerator_Row(t *testing.T) {
	g := NewGenerator(42)
	g.Now = fixedNow

	row, err := g.Row(Case{TestID: 1, Algorithm: frame.AlgorithmHamming, DataSize: 20, ErrorProbability: 0})
	require.NoError(t, err)

	assert.Len(t, row.OriginalText, 3)
	assert.Len(t, row.OriginalBits, 20)
	assert.Equal(t, 20+5+1, row.EncodedLength)
	assert.Equal(t, row.EncodedBits, row.NoisyBits)
	assert.Zero(t, row.ErrorsIntroduced)
	assert.InDelta(t, 5.0/20.0, row.Overhead, 1e-12)
	assert.Equal(t, int64(1700000000000), row.Timestamp)

	// los bits originales son el prefijo ASCII del texto
	assert.True(t, strings.HasPrefix(bits.FromBytes([]byte(row.OriginalText)).String(), row.OriginalBits))
	want := frame.HammingEncoder{}.Encode(bits.MustParse(row.OriginalBits))
	assert.Equal(t, want.String(), row.EncodedBits)
}

func TestGenerator_RowNoise(t *testing.T) {
	g := NewGenerator(7)
	row, err := g.Row(Case{TestID: 9, Algorithm: frame.AlgorithmFletcher16, DataSize: 64, ErrorProbability: 1})
	require.NoError(t, err)

	assert.Equal(t, row.EncodedLength, row.ErrorsIntroduced)
	for i := range row.EncodedBits {
		assert.NotEqual(t, row.EncodedBits[i], row.NoisyBits[i])
	}
}

func TestGenerator_RunDeterministic(t *testing.T) {
	run := func(workers int) []Row {
		g := NewGenerator(2024)
		g.Now = fixedNow
		rows, err := g.Run(context.Background(), smallPlan(), workers)
		require.NoError(t, err)
		return rows
	}

	serial := run(1)
	parallel := run(8)
	require.Len(t, serial, 24)
	assert.Equal(t, serial, parallel)

	for i, r := range serial {
		assert.Equal(t, i+1, r.TestID)
	}
}

func TestGenerator_RunRecordsMetricsAndID(t *testing.T) {
	g := NewGenerator(1)
	g.Metrics = metrics.NewRecorder()

	_, err := uuid.Parse(g.ID)
	require.NoError(t, err)

	rows, err := g.Run(context.Background(), smallPlan(), 4)
	require.NoError(t, err)
	assert.Len(t, rows, 24)
}

func TestGenerator_RunInvalidPlan(t *testing.T) {
	_, err := NewGenerator(1).Run(context.Background(), Plan{}, 2)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestGenerator_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(1).Run(ctx, smallPlan(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		{Algorithm: frame.AlgorithmHamming, Overhead: 0.2, ErrorsIntroduced: 1},
		{Algorithm: frame.AlgorithmFletcher16, Overhead: 0.5, ErrorsIntroduced: 0},
		{Algorithm: frame.AlgorithmHamming, Overhead: 0.4, ErrorsIntroduced: 2},
	}
	got := Summarize(rows)

	require.Len(t, got, 2)
	assert.Equal(t, frame.AlgorithmHamming, got[0].Algorithm)
	assert.Equal(t, 2, got[0].Rows)
	assert.InDelta(t, 0.3, got[0].MeanOverhead, 1e-12)
	assert.Equal(t, 3, got[0].TotalErrors)
	assert.Equal(t, 1, got[1].Rows)
}

func TestRandomText(t *testing.T) {
	text := RandomText(rand.New(rand.NewSource(1)), 50)
	assert.Len(t, text, 50)
	for _, c := range text {
		assert.Contains(t, textAlphabet, string(c))
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{{
		TestID:           1,
		Algorithm:        frame.AlgorithmHamming,
		DataSize:         8,
		ErrorProbability: 0.05,
		OriginalText:     `a,"b`,
		OriginalBits:     "01100001",
		EncodedBits:      "0111000000011",
		EncodedLength:    13,
		NoisyBits:        "0111000000010",
		ErrorsIntroduced: 1,
		ErrorPositions:   []int{12},
		Overhead:         0.5,
		Timestamp:        1700000000000,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Equal(t, `1,hamming,8,0.05,"a,""b",01100001,0111000000011,13,0111000000010,1,12,0.500000,1700000000000`, lines[1])
}

func TestWriteFile_Compressed(t *testing.T) {
	g := NewGenerator(3)
	rows, err := g.Run(context.Background(), smallPlan(), 2)
	require.NoError(t, err)

	for _, compress := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "results", "emisor_data.csv")
		require.NoError(t, WriteFile(path, rows, compress))

		records, err := ReadFile(path, compress)
		require.NoError(t, err)
		require.Len(t, records, len(rows)+1)
		assert.Equal(t, Header, records[0])
		assert.Equal(t, rows[5].Record(), records[6])
	}
}
