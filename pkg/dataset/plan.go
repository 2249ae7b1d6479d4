package dataset

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
)

// ErrInvalidPlan se devuelve cuando la configuración de pruebas no es válida.
var ErrInvalidPlan = errors.New("plan de pruebas inválido")

var planValidate = validator.New()

// Plan es la configuración de pruebas: cada combinación de algoritmo, tamaño y
// probabilidad de error se repite Iterations veces.
type Plan struct {
	Algorithms         []frame.Algorithm `yaml:"algorithms" validate:"required,min=1,dive,oneof=hamming fletcher16"`
	DataSizes          []int             `yaml:"data_sizes" validate:"required,min=1,dive,gt=0"`
	ErrorProbabilities []float64         `yaml:"error_probabilities" validate:"required,min=1,dive,gte=0,lte=1"`
	Iterations         int               `yaml:"iterations" validate:"gt=0"`
}

// DefaultPlan devuelve la configuración usada para los datos del informe.
func DefaultPlan() Plan {
	return Plan{
		Algorithms:         []frame.Algorithm{frame.AlgorithmHamming, frame.AlgorithmFletcher16},
		DataSizes:          []int{32, 64, 128, 256, 512},
		ErrorProbabilities: []float64{0.0, 0.01, 0.02, 0.05, 0.1},
		Iterations:         100,
	}
}

// Validate verifica el plan.
func (p Plan) Validate() error {
	if err := planValidate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	return nil
}

// Configurations devuelve la cantidad de combinaciones distintas (sin contar iteraciones).
func (p Plan) Configurations() int {
	return len(p.Algorithms) * len(p.DataSizes) * len(p.ErrorProbabilities)
}

// Total devuelve la cantidad de pruebas del plan.
func (p Plan) Total() int {
	return p.Configurations() * p.Iterations
}

// Case es una prueba individual del plan.
type Case struct {
	TestID           int // 1-based, en orden de enumeración
	Algorithm        frame.Algorithm
	DataSize         int
	ErrorProbability float64
	Iteration        int
}

// Cases enumera el producto cartesiano algoritmo × tamaño × probabilidad × iteración.
// El índice i se descompone en base mixta, con la iteración variando más rápido.
func (p Plan) Cases() []Case {
	total := p.Total()
	cases := make([]Case, total)
	for i := range cases {
		rest := i
		iter := rest % p.Iterations
		rest /= p.Iterations
		prob := rest % len(p.ErrorProbabilities)
		rest /= len(p.ErrorProbabilities)
		size := rest % len(p.DataSizes)
		rest /= len(p.DataSizes)

		cases[i] = Case{
			TestID:           i + 1,
			Algorithm:        p.Algorithms[rest],
			DataSize:         p.DataSizes[size],
			ErrorProbability: p.ErrorProbabilities[prob],
			Iteration:        iter,
		}
	}
	return cases
}
