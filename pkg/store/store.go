package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultPath es donde el emisor deja la última trama codificada para el receptor.
const DefaultPath = "../tests/mensaje.txt"

// Receipt describe un mensaje escrito en disco.
type Receipt struct {
	Path   string
	Bytes  int
	Digest string // xxhash64 del contenido, en hex
}

// Digest calcula el xxhash64 de un mensaje, en hexadecimal de 16 dígitos.
func Digest(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Write escribe el mensaje en path como texto UTF-8, sobrescribiendo el
// contenido existente. Crea los directorios padre si no existen.
func Write(path, content string) (Receipt, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Receipt{}, fmt.Errorf("no se pudo crear el directorio %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Receipt{}, fmt.Errorf("error al escribir archivo %s: %w", path, err)
	}
	return Receipt{Path: path, Bytes: len(content), Digest: Digest(content)}, nil
}

// Read devuelve el mensaje guardado y verifica el digest si se indica uno.
func Read(path, digest string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error al leer archivo %s: %w", path, err)
	}
	content := string(data)
	if digest != "" && Digest(content) != digest {
		return "", fmt.Errorf("digest no coincide para %s: esperado %s, obtenido %s", path, digest, Digest(content))
	}
	return content, nil
}

// String implementa fmt.Stringer para logs.
func (r Receipt) String() string {
	return r.Path + " (" + strconv.Itoa(r.Bytes) + " bytes, xxh64=" + r.Digest + ")"
}
