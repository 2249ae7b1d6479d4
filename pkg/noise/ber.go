package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
)

var (
	// ErrInvalidFlipCount se devuelve cuando k < 0 o k > longitud de la trama.
	ErrInvalidFlipCount = errors.New("cantidad de bits a voltear inválida")
	// ErrInvalidBER se devuelve cuando la probabilidad no está en [0, 1].
	ErrInvalidBER = errors.New("BER inválido")
)

// Injector maneja la inyección de errores en una trama.
// El generador aleatorio no es seguro para uso concurrente, por eso va detrás de un mutex.
type Injector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewInjector crea una nueva instancia con semilla aleatoria
func NewInjector() *Injector {
	return NewInjectorWithSeed(time.Now().UnixNano())
}

// NewInjectorWithSeed crea una instancia con semilla específica (para tests reproducibles)
func NewInjectorWithSeed(seed int64) *Injector {
	return &Injector{rng: rand.New(rand.NewSource(seed))}
}

// Report describe el ruido aplicado a una trama.
type Report struct {
	Enabled     bool  // false cuando no se pidió ruido
	Flips       int   // cantidad de bits volteados
	Positions   []int // posiciones volteadas (0-indexed, ascendentes, únicas)
	OriginalLen int   // longitud de la trama codificada
}

// ActualBER devuelve la proporción de bits volteados.
func (r Report) ActualBER() float64 {
	if r.OriginalLen == 0 {
		return 0
	}
	return float64(r.Flips) / float64(r.OriginalLen)
}

// InjectFlips voltea exactamente k bits distintos elegidos al azar sin reemplazo.
// La trama original no se modifica.
func (n *Injector) InjectFlips(frame bits.Vector, k int) (bits.Vector, Report, error) {
	size := frame.Len()
	if k < 0 || k > size {
		return bits.Vector{}, Report{}, fmt.Errorf("%w: k=%d excede longitud (%d)", ErrInvalidFlipCount, k, size)
	}
	if k == 0 {
		return frame, Report{Positions: []int{}, OriginalLen: size}, nil
	}

	n.mu.Lock()
	positions := n.rng.Perm(size)[:k]
	n.mu.Unlock()
	sort.Ints(positions)

	report := Report{
		Enabled:     true,
		Flips:       k,
		Positions:   positions,
		OriginalLen: size,
	}
	return frame.Flip(positions...), report, nil
}

// ApplyBER voltea cada bit de forma independiente con probabilidad ber.
func (n *Injector) ApplyBER(frame bits.Vector, ber float64) (bits.Vector, Report, error) {
	if ber < 0.0 || ber > 1.0 || math.IsNaN(ber) {
		return bits.Vector{}, Report{}, fmt.Errorf("%w: %.3f (debe estar entre 0.0 y 1.0)", ErrInvalidBER, ber)
	}

	positions := []int{}
	n.mu.Lock()
	for i := 0; i < frame.Len(); i++ {
		if n.rng.Float64() < ber {
			positions = append(positions, i)
		}
	}
	n.mu.Unlock()

	report := Report{
		Enabled:     true,
		Flips:       len(positions),
		Positions:   positions,
		OriginalLen: frame.Len(),
	}
	return frame.Flip(positions...), report, nil
}

// ChannelStats contiene estadísticas del canal ruidoso
type ChannelStats struct {
	TargetBER                    float64
	AverageBER                   float64
	BERVariance                  float64
	BERStdDev                    float64
	Iterations                   int
	TotalBits                    int
	TotalErrors                  int
	AverageErrorsPerTransmission float64
	MaxErrors                    int
	MinErrors                    int
	ErrorDistribution            map[int]int // cantidad_errores -> frecuencia
}

// Simulate aplica ApplyBER iterations veces sobre la misma trama para análisis estadístico.
func (n *Injector) Simulate(frame bits.Vector, ber float64, iterations int) (*ChannelStats, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iteraciones debe ser mayor a 0: %d", iterations)
	}

	stats := &ChannelStats{
		TargetBER:         ber,
		Iterations:        iterations,
		TotalBits:         frame.Len() * iterations,
		ErrorDistribution: make(map[int]int),
	}

	berValues := make([]float64, 0, iterations)
	for i := 0; i < iterations; i++ {
		_, report, err := n.ApplyBER(frame, ber)
		if err != nil {
			return nil, fmt.Errorf("error en iteración %d: %w", i, err)
		}

		stats.TotalErrors += report.Flips
		berValues = append(berValues, report.ActualBER())
		stats.ErrorDistribution[report.Flips]++

		if i == 0 || report.Flips > stats.MaxErrors {
			stats.MaxErrors = report.Flips
		}
		if i == 0 || report.Flips < stats.MinErrors {
			stats.MinErrors = report.Flips
		}
	}

	if stats.TotalBits > 0 {
		stats.AverageBER = float64(stats.TotalErrors) / float64(stats.TotalBits)
	}
	stats.AverageErrorsPerTransmission = float64(stats.TotalErrors) / float64(iterations)

	var variance float64
	for _, v := range berValues {
		diff := v - stats.AverageBER
		variance += diff * diff
	}
	stats.BERVariance = variance / float64(len(berValues))
	stats.BERStdDev = math.Sqrt(stats.BERVariance)

	return stats, nil
}

// ErrorCount es una entrada de la distribución de errores.
type ErrorCount struct {
	Errors int
	Count  int
}

// TopErrors devuelve las limit entradas más frecuentes de la distribución,
// desempatando por cantidad de errores ascendente.
func (s *ChannelStats) TopErrors(limit int) []ErrorCount {
	dist := make([]ErrorCount, 0, len(s.ErrorDistribution))
	for errs, count := range s.ErrorDistribution {
		dist = append(dist, ErrorCount{Errors: errs, Count: count})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Errors < dist[j].Errors
	})
	if len(dist) > limit {
		dist = dist[:limit]
	}
	return dist
}

// ExpectedErrors estima cuántos errores se esperan para una trama de longitud
// dada en cada BER.
func ExpectedErrors(length int, bers []float64) map[float64]float64 {
	out := make(map[float64]float64, len(bers))
	for _, ber := range bers {
		out[ber] = float64(length) * ber
	}
	return out
}
