package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/noise"
)

// Algorithm identifica el esquema de control de errores de una trama.
type Algorithm string

const (
	AlgorithmHamming    Algorithm = "hamming"
	AlgorithmFletcher16 Algorithm = "fletcher16"
)

// Algorithms lista los esquemas soportados, en el orden usado por el generador de datos.
var Algorithms = []Algorithm{AlgorithmHamming, AlgorithmFletcher16}

// ErrUnknownAlgorithm se devuelve para nombres de algoritmo no soportados.
var ErrUnknownAlgorithm = errors.New("algoritmo no soportado")

// ParseAlgorithm valida un nombre de algoritmo (sin distinguir mayúsculas).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case AlgorithmHamming, AlgorithmFletcher16:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// NormalizeAlgorithm es la política de la CLI: cualquier valor desconocido o vacío es Hamming.
func NormalizeAlgorithm(s string) Algorithm {
	a, err := ParseAlgorithm(s)
	if err != nil {
		return AlgorithmHamming
	}
	return a
}

// Encoder produce una trama codificada a partir de los bits de datos.
type Encoder interface {
	Algorithm() Algorithm
	Encode(data bits.Vector) bits.Vector
	// RedundantBits devuelve cuántos bits agrega el esquema para k bits de datos.
	RedundantBits(k int) int
}

// EncoderFor devuelve el Encoder del algoritmo dado.
func EncoderFor(a Algorithm) (Encoder, error) {
	switch a {
	case AlgorithmHamming:
		return HammingEncoder{}, nil
	case AlgorithmFletcher16:
		return Fletcher16Encoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

// Overhead es la proporción de bits agregados (paridad o checksum) sobre los
// bits de datos. Para la comparación entre esquemas Hamming cuenta solo los r
// bits de paridad, sin el global.
func Overhead(a Algorithm, dataSize int) float64 {
	if dataSize <= 0 {
		return 0
	}
	switch a {
	case AlgorithmHamming:
		return float64(ParityBitCount(dataSize)) / float64(dataSize)
	case AlgorithmFletcher16:
		return float64(ChecksumBits) / float64(dataSize)
	default:
		return 0
	}
}

// NoiseMeta es el bloque de ruido que viaja junto a la trama.
type NoiseMeta struct {
	Enabled   bool  `json:"enabled"`
	Flips     int   `json:"flips"`
	Positions []int `json:"positions"`
}

// Meta acompaña al mensaje con la longitud codificada original.
type Meta struct {
	OriginalLen int       `json:"original_len"`
	Noise       NoiseMeta `json:"noise"`
}

// Frame es el payload que se entrega al transporte.
type Frame struct {
	Algorithm Algorithm `json:"algorithm"`
	Message   string    `json:"message"`
	Meta      Meta      `json:"meta"`
}

// BuildFrame arma la trama final. transmitted son los bits a enviar (con o
// sin ruido); report es nil cuando no se aplicó ruido, y en ese caso la
// longitud original es la de transmitted.
func BuildFrame(a Algorithm, transmitted bits.Vector, report *noise.Report) Frame {
	f := Frame{
		Algorithm: a,
		Message:   transmitted.String(),
		Meta: Meta{
			OriginalLen: transmitted.Len(),
			Noise:       NoiseMeta{Positions: []int{}},
		},
	}
	if report != nil {
		positions := make([]int, len(report.Positions))
		copy(positions, report.Positions)
		f.Meta.OriginalLen = report.OriginalLen
		f.Meta.Noise = NoiseMeta{
			Enabled:   report.Enabled,
			Flips:     report.Flips,
			Positions: positions,
		}
	}
	return f
}
