package bits

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCharacter se devuelve cuando una cadena contiene algo distinto de '0' o '1'.
var ErrInvalidCharacter = errors.New("carácter inválido para bit")

// InvalidCharacterError indica la posición y el carácter que no es un bit.
type InvalidCharacterError struct {
	Index int
	Char  rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v: %q en posición %d", ErrInvalidCharacter, e.Char, e.Index)
}

func (e *InvalidCharacterError) Unwrap() error { return ErrInvalidCharacter }

// Vector es una secuencia inmutable de bits (cada elemento es 0 o 1).
// El valor cero es un vector vacío válido.
type Vector struct {
	b []byte
}

// Parse convierte una cadena de '0' y '1' en un Vector.
func Parse(s string) (Vector, error) {
	out := make([]byte, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		default:
			return Vector{}, &InvalidCharacterError{Index: i, Char: r}
		}
	}
	return Vector{b: out}, nil
}

// MustParse es como Parse pero hace panic si la cadena no es binaria.
// Pensado para constantes y tests.
func MustParse(s string) Vector {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromBits copia un slice de bits (valores 0 o 1) a un Vector.
func FromBits(src []byte) (Vector, error) {
	for i, bit := range src {
		if bit != 0 && bit != 1 {
			return Vector{}, fmt.Errorf("bit inválido en posición %d: %d (debe ser 0 o 1)", i, bit)
		}
	}
	out := make([]byte, len(src))
	copy(out, src)
	return Vector{b: out}, nil
}

// Len devuelve la cantidad de bits.
func (v Vector) Len() int { return len(v.b) }

// At devuelve el bit en la posición i (0-indexed).
func (v Vector) At(i int) byte { return v.b[i] }

// Bits devuelve una copia de los bits subyacentes.
func (v Vector) Bits() []byte {
	out := make([]byte, len(v.b))
	copy(out, v.b)
	return out
}

// String devuelve la representación textual, p. ej. "1011".
func (v Vector) String() string {
	var sb strings.Builder
	sb.Grow(len(v.b))
	for _, bit := range v.b {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// Equal reporta si ambos vectores contienen los mismos bits.
func (v Vector) Equal(o Vector) bool {
	if len(v.b) != len(o.b) {
		return false
	}
	for i := range v.b {
		if v.b[i] != o.b[i] {
			return false
		}
	}
	return true
}

// Concat devuelve un nuevo vector con los bits de v seguidos de los de o.
func (v Vector) Concat(o Vector) Vector {
	out := make([]byte, 0, len(v.b)+len(o.b))
	out = append(out, v.b...)
	out = append(out, o.b...)
	return Vector{b: out}
}

// XOR devuelve la paridad de todos los bits del vector.
func (v Vector) XOR() byte {
	var p byte
	for _, bit := range v.b {
		p ^= bit
	}
	return p
}

// Flip devuelve un nuevo vector con los bits de las posiciones dadas invertidos.
// Las posiciones fuera de rango hacen panic, igual que un índice de slice.
func (v Vector) Flip(positions ...int) Vector {
	out := v.Bits()
	for _, p := range positions {
		out[p] ^= 1
	}
	return Vector{b: out}
}

// Uint devuelve un vector de width bits con el valor n, MSB primero.
func Uint(n uint64, width int) Vector {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[width-1-i] = byte(n>>i) & 1
	}
	return Vector{b: out}
}

// Bytes empaqueta los bits en bytes MSB primero, rellenando con ceros a la derecha
// hasta completar el último byte.
func (v Vector) Bytes() []byte {
	out := make([]byte, (len(v.b)+7)/8)
	for i, bit := range v.b {
		if bit == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out
}

// FromBytes expande cada byte en 8 bits, MSB primero.
func FromBytes(data []byte) Vector {
	out := make([]byte, 0, len(data)*8)
	for _, c := range data {
		for i := 7; i >= 0; i-- {
			out = append(out, (c>>i)&1)
		}
	}
	return Vector{b: out}
}

// Slice devuelve una copia de los bits en [from, to).
func (v Vector) Slice(from, to int) Vector {
	out := make([]byte, to-from)
	copy(out, v.b[from:to])
	return Vector{b: out}
}
