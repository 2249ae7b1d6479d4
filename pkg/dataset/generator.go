package dataset

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/metrics"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/noise"
)

const textAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 .,!?"

// Row es una fila del dataset del emisor.
type Row struct {
	TestID           int
	Algorithm        frame.Algorithm
	DataSize         int
	ErrorProbability float64
	OriginalText     string
	OriginalBits     string
	EncodedBits      string
	EncodedLength    int
	NoisyBits        string
	ErrorsIntroduced int
	ErrorPositions   []int
	Overhead         float64
	Timestamp        int64 // milisegundos Unix
}

// Generator produce filas del dataset. Cada caso usa una semilla derivada de
// Seed y de su TestID, así el resultado no depende del orden de ejecución.
type Generator struct {
	ID      string
	Seed    int64
	Now     func() time.Time
	Metrics *metrics.Recorder
}

// NewGenerator crea un generador con un ID de ejecución nuevo.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		ID:   uuid.NewString(),
		Seed: seed,
		Now:  time.Now,
	}
}

func (g *Generator) caseSeed(c Case) int64 {
	return g.Seed ^ (int64(c.TestID) * 0x5DEECE66D)
}

// RandomText genera length caracteres del alfabeto de pruebas.
func RandomText(rng *rand.Rand, length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(textAlphabet[rng.Intn(len(textAlphabet))])
	}
	return sb.String()
}

// Row genera la fila de un caso: texto aleatorio, codificación y ruido por bit.
func (g *Generator) Row(c Case) (Row, error) {
	enc, err := frame.EncoderFor(c.Algorithm)
	if err != nil {
		return Row{}, err
	}

	rng := rand.New(rand.NewSource(g.caseSeed(c)))
	text := RandomText(rng, (c.DataSize+7)/8)
	data := bits.FromBytes([]byte(text)).Slice(0, c.DataSize)

	encoded := enc.Encode(data)
	noisy, report, err := noise.NewInjectorWithSeed(rng.Int63()).ApplyBER(encoded, c.ErrorProbability)
	if err != nil {
		return Row{}, fmt.Errorf("prueba %d: %w", c.TestID, err)
	}

	g.Metrics.ObserveEncode(string(c.Algorithm), encoded.Len())
	g.Metrics.ObserveFlips(metrics.ModelBER, report.Flips)
	g.Metrics.ObserveRow(string(c.Algorithm))

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	return Row{
		TestID:           c.TestID,
		Algorithm:        c.Algorithm,
		DataSize:         c.DataSize,
		ErrorProbability: c.ErrorProbability,
		OriginalText:     text,
		OriginalBits:     data.String(),
		EncodedBits:      encoded.String(),
		EncodedLength:    encoded.Len(),
		NoisyBits:        noisy.String(),
		ErrorsIntroduced: report.Flips,
		ErrorPositions:   report.Positions,
		Overhead:         frame.Overhead(c.Algorithm, c.DataSize),
		Timestamp:        now().UnixMilli(),
	}, nil
}

// Run genera todas las filas del plan con hasta workers goroutines. Las filas
// se devuelven en orden de TestID.
func (g *Generator) Run(ctx context.Context, plan Plan, workers int) ([]Row, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	cases := plan.Cases()
	rows := make([]Row, len(cases))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range cases {
		if egCtx.Err() != nil {
			break
		}
		i, c := i, c
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			row, err := g.Row(c)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Summary resume las filas de un algoritmo.
type Summary struct {
	Algorithm    frame.Algorithm
	Rows         int
	MeanOverhead float64
	TotalErrors  int
}

// Summarize agrupa por algoritmo, en orden de primera aparición.
func Summarize(rows []Row) []Summary {
	var out []Summary
	index := map[frame.Algorithm]int{}
	for _, r := range rows {
		i, ok := index[r.Algorithm]
		if !ok {
			i = len(out)
			index[r.Algorithm] = i
			out = append(out, Summary{Algorithm: r.Algorithm})
		}
		out[i].Rows++
		out[i].MeanOverhead += r.Overhead
		out[i].TotalErrors += r.ErrorsIntroduced
	}
	for i := range out {
		out[i].MeanOverhead /= float64(out[i].Rows)
	}
	return out
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ";")
}
