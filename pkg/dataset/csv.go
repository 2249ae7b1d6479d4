package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zstd"
)

// Header son las columnas del CSV, en el orden que espera el análisis en Python.
var Header = []string{
	"testId",
	"algorithm",
	"dataSize",
	"errorProbability",
	"originalText",
	"originalBits",
	"encodedBits",
	"encodedLength",
	"noisyBits",
	"errorsIntroduced",
	"errorPositions",
	"overhead",
	"timestamp",
}

// Record convierte la fila a columnas CSV.
func (r Row) Record() []string {
	return []string{
		strconv.Itoa(r.TestID),
		string(r.Algorithm),
		strconv.Itoa(r.DataSize),
		strconv.FormatFloat(r.ErrorProbability, 'f', -1, 64),
		r.OriginalText,
		r.OriginalBits,
		r.EncodedBits,
		strconv.Itoa(r.EncodedLength),
		r.NoisyBits,
		strconv.Itoa(r.ErrorsIntroduced),
		joinPositions(r.ErrorPositions),
		strconv.FormatFloat(r.Overhead, 'f', 6, 64),
		strconv.FormatInt(r.Timestamp, 10),
	}
}

// WriteCSV escribe el encabezado y las filas.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("fila %d: %w", r.TestID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile guarda las filas en path, creando el directorio si no existe.
// Con compress el CSV se comprime con zstd.
func WriteFile(path string, rows []Row, compress bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("no se pudo crear el directorio de salida: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !compress {
		return WriteCSV(f, rows)
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := WriteCSV(zw, rows); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadFile lee un CSV generado por WriteFile (comprimido o no) y devuelve los
// registros, encabezado incluido.
func ReadFile(path string, compressed bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return csv.NewReader(r).ReadAll()
}
