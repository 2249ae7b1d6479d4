package presentation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
)

// ErrEmptyInput se devuelve cuando el mensaje está vacío o solo tiene espacios.
var ErrEmptyInput = errors.New("el mensaje no puede estar vacío")

// ValidateText verifica que el texto sea válido para transmisión
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("el texto contiene caracteres no válidos UTF-8")
	}
	for i, r := range text {
		if r > 127 {
			return fmt.Errorf("carácter no-ASCII en posición %d: '%c' (código %d)", i, r, r)
		}
	}
	return nil
}

// TextToBits convierte texto ASCII a bits, 8 por carácter, MSB primero.
func TextToBits(text string) (bits.Vector, error) {
	if err := ValidateText(text); err != nil {
		return bits.Vector{}, err
	}
	return bits.FromBytes([]byte(text)), nil
}

// BitsToText convierte bits a texto ASCII
func BitsToText(v bits.Vector) (string, error) {
	if v.Len()%8 != 0 {
		return "", fmt.Errorf("la longitud de bits (%d) no es múltiplo de 8", v.Len())
	}

	out := v.Bytes()
	for i, c := range out {
		if c > 127 {
			return "", fmt.Errorf("código de carácter inválido en byte %d: %d (mayor que 127)", i, c)
		}
	}
	return string(out), nil
}

// Stats resume la composición de un mensaje.
type Stats struct {
	Characters int
	Bits       int
	Letters    int
	Digits     int
	Spaces     int
	Specials   int
}

// TextStats devuelve información sobre la codificación
func TextStats(text string) Stats {
	s := Stats{Characters: len(text), Bits: len(text) * 8}
	for _, c := range text {
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			s.Letters++
		case c >= '0' && c <= '9':
			s.Digits++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.Spaces++
		default:
			s.Specials++
		}
	}
	return s
}
