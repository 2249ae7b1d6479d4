package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/application"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/presentation"
)

var isInteractive = stdinIsTerminal

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newSendCmd() *cobra.Command {
	var (
		message   string
		algorithm string
		flips     int
		wsURL     string
		dryRun    bool
		noReply   bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Codifica un mensaje, opcionalmente le agrega ruido y lo envía al receptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := cfg.Client()
			if wsURL != "" {
				client.URL = wsURL
			}
			if noReply {
				client.ReadTimeout = 0
			}
			emitter := application.NewEmitter(client, recorder)

			interactive := message == ""
			if interactive && !isInteractive() {
				return errors.New("stdin no es una terminal: use --message")
			}

			fmt.Fprintln(out, "=== Emisor (WS) - Capa de Enlace ===")

			var prompter *application.Prompter
			alg := frame.NormalizeAlgorithm(algorithm)
			if interactive {
				prompter = application.NewPrompter(cmd.InOrStdin(), out)
				var err error
				if alg, err = prompter.AskAlgorithm(); err != nil {
					return err
				}
				if message, err = prompter.AskMessage(); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Algoritmo seleccionado: %s\n", alg)
			stats := presentation.TextStats(message)
			slog.Debug("Message read", "chars", stats.Characters, "letters", stats.Letters,
				"digits", stats.Digits, "spaces", stats.Spaces, "specials", stats.Specials)

			data, err := presentation.TextToBits(message)
			if err != nil {
				return err
			}
			if interactive {
				enc, err := frame.EncoderFor(alg)
				if err != nil {
					return err
				}
				choice, err := prompter.AskNoise(data.Len() + enc.RedundantBits(data.Len()))
				if err != nil {
					return err
				}
				flips = choice.Flips
			}

			tr, err := emitter.Prepare(data, alg, flips)
			if err != nil {
				return err
			}

			printTransmission(out, tr)
			if dryRun {
				return nil
			}

			slog.Info("Sending frame", "url", client.URL, "algorithm", alg, "bits", tr.Transmitted.Len())
			reply, err := emitter.Send(cmd.Context(), tr)
			if err != nil {
				return err
			}
			if reply != nil {
				printReply(out, reply.JSON, reply.Raw)
			}
			slog.Info("Frame delivered", "url", client.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Mensaje de texto libre (sin él se pregunta de forma interactiva)")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(frame.AlgorithmHamming), "hamming | fletcher16")
	cmd.Flags().IntVarP(&flips, "flips", "k", 0, "Cantidad de bits a voltear (0 = sin ruido)")
	cmd.Flags().StringVar(&wsURL, "ws-url", "", "URL del receptor (por defecto la de la configuración o WS_URL)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Solo mostrar el payload, sin enviarlo")
	cmd.Flags().BoolVar(&noReply, "no-reply", false, "No esperar la respuesta del receptor")
	return cmd
}

func printTransmission(out io.Writer, tr *application.Transmission) {
	fmt.Fprintf(out, "\nASCII (bits):\n%s\n", tr.Data)
	if tr.Algorithm == frame.AlgorithmHamming {
		fmt.Fprintf(out, "Bits de paridad: %d\n", frame.ParityBitCount(tr.Data.Len()))
		fmt.Fprintf(out, "Posiciones con bits de paridad (en 0): %s\n", tr.Layout)
	} else {
		fmt.Fprintf(out, "Checksum: 0x%04X\n", frame.Fletcher16Checksum(tr.Data))
	}
	fmt.Fprintf(out, "Trama codificada (%d bits): %s\n", tr.Encoded.Len(), tr.Encoded)

	if tr.Noise != nil {
		positions := make([]string, len(tr.Noise.Positions))
		for i, p := range tr.Noise.Positions {
			positions[i] = fmt.Sprint(p)
		}
		fmt.Fprintf(out, "\nRuido aplicado: %d bit(s) volteado(s) en posiciones (0-based): %s\n",
			tr.Noise.Flips, strings.Join(positions, ", "))
	}

	payload, _ := json.MarshalIndent(tr.Frame, "", "  ")
	fmt.Fprintf(out, "\nPayload a enviar:\n%s\n", payload)
}

func printReply(out io.Writer, decoded map[string]any, raw string) {
	if decoded == nil {
		fmt.Fprintf(out, "\nRespuesta del receptor (texto):\n%s\n", raw)
		return
	}
	pretty, _ := json.MarshalIndent(decoded, "", "  ")
	fmt.Fprintf(out, "\nRespuesta del receptor:\n%s\n", pretty)
}
