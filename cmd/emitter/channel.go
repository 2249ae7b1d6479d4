package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/metrics"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/noise"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/presentation"
)

func newChannelCmd() *cobra.Command {
	var (
		message    string
		algorithm  string
		ber        float64
		iterations int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Simula el canal ruidoso (BER) sobre una trama codificada y muestra estadísticas",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := frame.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			enc, err := frame.EncoderFor(alg)
			if err != nil {
				return err
			}
			data, err := presentation.TextToBits(message)
			if err != nil {
				return err
			}
			encoded := enc.Encode(data)
			recorder.ObserveEncode(string(alg), encoded.Len())

			injector := noise.NewInjector()
			if cmd.Flags().Changed("seed") {
				injector = noise.NewInjectorWithSeed(seed)
			}
			stats, err := injector.Simulate(encoded, ber, iterations)
			if err != nil {
				return err
			}
			recorder.ObserveFlips(metrics.ModelBER, stats.TotalErrors)

			printChannelStats(cmd.OutOrStdout(), alg, encoded.Len(), stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "Hello World", "Mensaje base")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(frame.AlgorithmHamming), "hamming | fletcher16")
	cmd.Flags().Float64Var(&ber, "ber", 0.01, "Bit Error Rate (0.0 a 1.0)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 1000, "Número de transmisiones simuladas")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Semilla para resultados reproducibles")
	return cmd
}

func printChannelStats(out io.Writer, alg frame.Algorithm, frameLen int, stats *noise.ChannelStats) {
	fmt.Fprintln(out, "Estadísticas del Canal Ruidoso:")
	fmt.Fprintf(out, "   Algoritmo: %s (%d bits por trama)\n", alg, frameLen)
	fmt.Fprintf(out, "   BER objetivo: %.4f (%.2f%%)\n", stats.TargetBER, stats.TargetBER*100)
	fmt.Fprintf(out, "   BER promedio: %.4f (%.2f%%)\n", stats.AverageBER, stats.AverageBER*100)
	fmt.Fprintf(out, "   Desviación std BER: %.4f\n", stats.BERStdDev)
	fmt.Fprintf(out, "   Iteraciones: %d\n", stats.Iterations)
	fmt.Fprintf(out, "   Total de bits: %d\n", stats.TotalBits)
	fmt.Fprintf(out, "   Total de errores: %d\n", stats.TotalErrors)
	fmt.Fprintf(out, "   Errores promedio por transmisión: %.1f\n", stats.AverageErrorsPerTransmission)
	fmt.Fprintf(out, "   Rango de errores: %d - %d\n", stats.MinErrors, stats.MaxErrors)

	fmt.Fprintln(out, "   Distribución de errores (top 5):")
	for _, e := range stats.TopErrors(5) {
		pct := float64(e.Count) / float64(stats.Iterations) * 100
		fmt.Fprintf(out, "     %d errores: %d veces (%.1f%%)\n", e.Errors, e.Count, pct)
	}

	expected := noise.ExpectedErrors(frameLen, []float64{stats.TargetBER})
	fmt.Fprintf(out, "   Errores esperados por trama: %.2f\n", expected[stats.TargetBER])
}
