package application

import (
	"context"
	"fmt"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/metrics"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/noise"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/presentation"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/wsclient"
)

// Transmission es el resultado de pasar un mensaje por las capas del emisor.
type Transmission struct {
	Algorithm   frame.Algorithm
	Data        bits.Vector   // bits del mensaje
	Layout      bits.Vector   // solo Hamming: bloque con paridades en 0
	Encoded     bits.Vector   // trama codificada
	Transmitted bits.Vector   // trama con ruido (igual a Encoded sin ruido)
	Noise       *noise.Report // nil sin ruido
	Frame       frame.Frame
}

// Emitter encadena presentación, enlace, ruido y transmisión.
type Emitter struct {
	Injector *noise.Injector
	Client   *wsclient.Client
	Metrics  *metrics.Recorder
}

// NewEmitter crea un emisor con inyector de semilla aleatoria.
func NewEmitter(client *wsclient.Client, m *metrics.Recorder) *Emitter {
	return &Emitter{
		Injector: noise.NewInjector(),
		Client:   client,
		Metrics:  m,
	}
}

// PrepareText convierte el texto a bits ASCII y llama a Prepare.
func (e *Emitter) PrepareText(text string, a frame.Algorithm, flips int) (*Transmission, error) {
	data, err := presentation.TextToBits(text)
	if err != nil {
		return nil, fmt.Errorf("error en presentación: %w", err)
	}
	return e.Prepare(data, a, flips)
}

// Prepare codifica los datos y, si flips != 0, voltea exactamente flips bits.
func (e *Emitter) Prepare(data bits.Vector, a frame.Algorithm, flips int) (*Transmission, error) {
	enc, err := frame.EncoderFor(a)
	if err != nil {
		return nil, err
	}

	t := &Transmission{Algorithm: a, Data: data}
	if h, ok := enc.(frame.HammingEncoder); ok {
		t.Layout = h.Layout(data)
	}
	t.Encoded = enc.Encode(data)
	t.Transmitted = t.Encoded
	e.Metrics.ObserveEncode(string(a), t.Encoded.Len())

	if flips != 0 {
		noisy, report, err := e.Injector.InjectFlips(t.Encoded, flips)
		if err != nil {
			return nil, err
		}
		t.Transmitted = noisy
		t.Noise = &report
		e.Metrics.ObserveFlips(metrics.ModelExactK, report.Flips)
	}

	t.Frame = frame.BuildFrame(a, t.Transmitted, t.Noise)
	return t, nil
}

// Send entrega la trama preparada al receptor.
func (e *Emitter) Send(ctx context.Context, t *Transmission) (*wsclient.Reply, error) {
	if e.Client == nil {
		return nil, fmt.Errorf("no hay receptor configurado")
	}
	reply, err := e.Client.Send(ctx, t.Frame)
	e.Metrics.ObserveSend(err)
	return reply, err
}
