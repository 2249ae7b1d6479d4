package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/application"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/store"
)

func newEncodeCmd() *cobra.Command {
	var (
		input     string
		algorithm string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Codifica una cadena binaria y guarda la trama en el archivo de mensajes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== EMISOR ===")

			var (
				data bits.Vector
				alg  frame.Algorithm
				err  error
			)
			if input == "" || algorithm == "" {
				if !isInteractive() {
					return errors.New("stdin no es una terminal: use --bits y --algorithm")
				}
			}
			prompter := application.NewPrompter(cmd.InOrStdin(), out)

			if input != "" {
				if data, err = bits.Parse(input); err != nil {
					return err
				}
			} else if data, err = prompter.AskBinary(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nCadena binaria ingresada: %s\n", data)

			if algorithm != "" {
				if alg, err = frame.ParseAlgorithm(algorithm); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, "\n=== Seleccione el algoritmo ===")
				if alg, err = prompter.AskAlgorithmChoice(); err != nil {
					return err
				}
			}

			enc, err := frame.EncoderFor(alg)
			if err != nil {
				return err
			}
			encoded := enc.Encode(data)
			recorder.ObserveEncode(string(alg), encoded.Len())
			fmt.Fprintf(out, "Nuevo mensaje (%s): %s\n", alg, encoded)

			path := cfg.Store.Path
			if outPath != "" {
				path = outPath
			}
			receipt, err := store.Write(path, encoded.String())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Mensaje escrito exitosamente en: %s\n", receipt.Path)
			slog.Info("Message stored", "receipt", receipt.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "bits", "b", "", "Cadena binaria (ej: '110101')")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "hamming | fletcher16 (sin él se pregunta)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Archivo de salida (por defecto store.path de la configuración)")
	return cmd
}
