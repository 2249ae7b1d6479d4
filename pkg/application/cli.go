package application

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/presentation"
)

// ErrNoInput se devuelve cuando la entrada se termina antes de una respuesta.
var ErrNoInput = errors.New("entrada terminada")

// NoiseChoice es la respuesta del usuario sobre el ruido.
type NoiseChoice struct {
	Enabled bool
	Flips   int
}

// Prompter maneja la interacción con el usuario
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter crea un Prompter que lee de in y escribe las preguntas en out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// AskAlgorithm solicita el algoritmo; vacío o desconocido es Hamming.
func (p *Prompter) AskAlgorithm() (frame.Algorithm, error) {
	answer, err := p.ask("¿Algoritmo? (hamming | fletcher16) [hamming]: ")
	if err != nil {
		return "", fmt.Errorf("error leyendo algoritmo: %w", err)
	}
	return frame.NormalizeAlgorithm(answer), nil
}

// AskMessage solicita el mensaje de texto libre.
func (p *Prompter) AskMessage() (string, error) {
	answer, err := p.ask("Escribe el mensaje (texto libre): ")
	if err != nil {
		return "", fmt.Errorf("error leyendo mensaje: %w", err)
	}
	if err := presentation.ValidateText(answer); err != nil {
		return "", err
	}
	return answer, nil
}

// AskNoise pregunta si se agrega ruido y cuántos bits voltear (1..max).
func (p *Prompter) AskNoise(max int) (NoiseChoice, error) {
	answer, err := p.ask("¿Agregar ruido? (s/n) [n]: ")
	if err != nil {
		return NoiseChoice{}, fmt.Errorf("error leyendo ruido: %w", err)
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí":
	default:
		return NoiseChoice{}, nil
	}

	kStr, err := p.ask(fmt.Sprintf("¿Cuántos bits voltear? (1..%d): ", max))
	if err != nil {
		return NoiseChoice{}, fmt.Errorf("error leyendo cantidad: %w", err)
	}
	k, err := strconv.Atoi(kStr)
	if err != nil || k < 1 || k > max {
		return NoiseChoice{}, fmt.Errorf("valor inválido: %s. Debe estar entre 1 y %d", kStr, max)
	}
	return NoiseChoice{Enabled: true, Flips: k}, nil
}

// AskBinary solicita una cadena binaria y vuelve a preguntar hasta que sea válida.
func (p *Prompter) AskBinary() (bits.Vector, error) {
	for {
		answer, err := p.ask("Ingrese la cadena de binario: ")
		if err != nil {
			return bits.Vector{}, fmt.Errorf("error leyendo cadena: %w", err)
		}
		v, err := bits.Parse(answer)
		if err == nil && v.Len() > 0 {
			return v, nil
		}
		fmt.Fprintln(p.out, "Error: La cadena debe contener solo 0s y 1s. Intente nuevamente.")
	}
}

// AskAlgorithmChoice pide el algoritmo por número (1 = Hamming, 2 = Fletcher-16)
// y vuelve a preguntar ante una opción inválida.
func (p *Prompter) AskAlgorithmChoice() (frame.Algorithm, error) {
	fmt.Fprintln(p.out, "1. Hamming")
	fmt.Fprintln(p.out, "2. Fletcher-16")
	for {
		answer, err := p.ask("Ingrese su opcion (1 o 2): ")
		if err != nil {
			return "", fmt.Errorf("error leyendo algoritmo: %w", err)
		}
		switch answer {
		case "1":
			return frame.AlgorithmHamming, nil
		case "2":
			return frame.AlgorithmFletcher16, nil
		}
		fmt.Fprintln(p.out, "Error: Ingrese 1 o 2. Intente nuevamente.")
	}
}
