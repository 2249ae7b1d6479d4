package frame

import "github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"

// HammingEncoder aplica Hamming extendido (SECDED) a una secuencia de bits de
// cualquier longitud: r bits de paridad en las posiciones potencia de dos más un
// bit de paridad global al final.
type HammingEncoder struct{}

// Algorithm implementa Encoder.
func (HammingEncoder) Algorithm() Algorithm { return AlgorithmHamming }

// ParityBitCount calcula cuántos bits de paridad se necesitan para k bits de
// datos: el menor r tal que 2^r >= k + r + 1.
func ParityBitCount(k int) int {
	r := 0
	for (1 << r) < k+r+1 {
		r++
	}
	return r
}

// IsParityPosition reporta si la posición i (1-indexed) es una potencia de dos.
func IsParityPosition(i int) bool {
	return i > 0 && i&(i-1) == 0
}

// RedundantBits devuelve los bits agregados para k bits de datos: r + 1 (global).
func (HammingEncoder) RedundantBits(k int) int {
	return ParityBitCount(k) + 1
}

// Layout coloca los datos en un bloque de k+r bits dejando en 0 las posiciones
// de paridad.
func (HammingEncoder) Layout(data bits.Vector) bits.Vector {
	block := layout(data.Bits())
	v, _ := bits.FromBits(block)
	return v
}

func layout(data []byte) []byte {
	k := len(data)
	n := k + ParityBitCount(k)
	block := make([]byte, n)
	d := 0
	for i := 1; i <= n; i++ {
		if IsParityPosition(i) {
			continue
		}
		block[i-1] = data[d]
		d++
	}
	return block
}

// Encode devuelve la trama Hamming: bloque de k+r bits con paridades calculadas
// seguido del bit de paridad global. Longitud final k+r+1.
func (HammingEncoder) Encode(data bits.Vector) bits.Vector {
	block := layout(data.Bits())
	n := len(block)

	// La paridad p cubre los bloques de p bits que empiezan en p-1 con saltos de 2p.
	for p := 1; p <= n; p <<= 1 {
		var parity byte
		for i := p - 1; i < n; i += 2 * p {
			for j := i; j < i+p && j < n; j++ {
				parity ^= block[j]
			}
		}
		block[p-1] = parity
	}

	var global byte
	for _, b := range block {
		global ^= b
	}
	block = append(block, global)

	v, _ := bits.FromBits(block)
	return v
}
