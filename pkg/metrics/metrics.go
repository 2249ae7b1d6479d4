package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder agrupa los contadores del emisor en un registro propio, así varias
// ejecuciones (o tests) no chocan con el registro global.
type Recorder struct {
	Registry *prometheus.Registry

	framesEncoded *prometheus.CounterVec
	bitsEncoded   *prometheus.CounterVec
	bitsFlipped   *prometheus.CounterVec
	framesSent    *prometheus.CounterVec
	datasetRows   *prometheus.CounterVec
}

// NewRecorder crea y registra los contadores.
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		framesEncoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "frames_encoded_total",
			Help:      "Tramas codificadas por algoritmo.",
		}, []string{"algorithm"}),
		bitsEncoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "encoded_bits_total",
			Help:      "Bits producidos por los codificadores.",
		}, []string{"algorithm"}),
		bitsFlipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "bits_flipped_total",
			Help:      "Bits volteados por el canal simulado.",
		}, []string{"model"}),
		framesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "frames_sent_total",
			Help:      "Tramas entregadas al receptor por resultado.",
		}, []string{"result"}),
		datasetRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "dataset_rows_total",
			Help:      "Filas generadas por el generador de datos.",
		}, []string{"algorithm"}),
	}
	r.Registry.MustRegister(r.framesEncoded, r.bitsEncoded, r.bitsFlipped, r.framesSent, r.datasetRows)
	return r
}

// Modelos de ruido para bits_flipped_total.
const (
	ModelExactK = "exact_k"
	ModelBER    = "ber"
)

// ObserveEncode registra una trama codificada de n bits.
func (r *Recorder) ObserveEncode(algorithm string, n int) {
	if r == nil {
		return
	}
	r.framesEncoded.WithLabelValues(algorithm).Inc()
	r.bitsEncoded.WithLabelValues(algorithm).Add(float64(n))
}

// ObserveFlips registra bits volteados por un modelo de ruido.
func (r *Recorder) ObserveFlips(model string, flips int) {
	if r == nil {
		return
	}
	r.bitsFlipped.WithLabelValues(model).Add(float64(flips))
}

// ObserveSend registra el resultado de un envío.
func (r *Recorder) ObserveSend(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.framesSent.WithLabelValues(result).Inc()
}

// ObserveRow registra una fila del dataset.
func (r *Recorder) ObserveRow(algorithm string) {
	if r == nil {
		return
	}
	r.datasetRows.WithLabelValues(algorithm).Inc()
}

// WriteTextfile vuelca los contadores en formato texto de Prometheus, para el
// textfile collector de node_exporter.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
