package frame

import "github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"

// ChecksumBits es el ancho del checksum agregado por Fletcher16Encoder.
const ChecksumBits = 16

// Fletcher16Encoder agrega un checksum Fletcher-16 de 16 bits al final de los datos.
// Es la variante sin complemento a uno final; el receptor espera exactamente esto.
type Fletcher16Encoder struct{}

// Algorithm implementa Encoder.
func (Fletcher16Encoder) Algorithm() Algorithm { return AlgorithmFletcher16 }

// RedundantBits siempre es 16, sin importar k.
func (Fletcher16Encoder) RedundantBits(int) int { return ChecksumBits }

// Fletcher16Sums agrupa los bits en bytes (relleno con ceros a la derecha) y
// acumula las dos sumas módulo 255.
func Fletcher16Sums(data bits.Vector) (sum1, sum2 int) {
	for _, b := range data.Bytes() {
		sum1 = (sum1 + int(b)) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return sum1, sum2
}

// Fletcher16Checksum devuelve (sum2 << 8) | sum1.
func Fletcher16Checksum(data bits.Vector) uint16 {
	sum1, sum2 := Fletcher16Sums(data)
	return uint16(sum2)<<8 | uint16(sum1)
}

// Encode concatena los bits originales (sin relleno) con el checksum.
func (Fletcher16Encoder) Encode(data bits.Vector) bits.Vector {
	return data.Concat(bits.Uint(uint64(Fletcher16Checksum(data)), ChecksumBits))
}
