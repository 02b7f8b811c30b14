package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoSidecar is returned when no analysis sidecar exists for an audio file.
var ErrNoSidecar = errors.New("analysis: no sidecar file found")

// Sidecar file extensions, tried in order.
const (
	extJSON    = ".analysis.json"
	extMsgpack = ".analysis.msgpack"
)

// SidecarPaths returns the candidate sidecar paths for an audio file, in the
// order they are probed: song.mp3 -> song.analysis.json, song.analysis.msgpack.
func SidecarPaths(audioPath string) []string {
	stem := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	return []string{stem + extJSON, stem + extMsgpack}
}

// LoadForAudio loads the analysis sidecar for an audio file. It returns the
// parsed document and the sidecar path that was used. A missing sidecar
// yields ErrNoSidecar; an unreadable or invalid one is fatal (no retry).
func LoadForAudio(audioPath string) (*Analysis, string, error) {
	for _, p := range SidecarPaths(audioPath) {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		a, err := Load(p)
		if err != nil {
			return nil, p, err
		}
		return a, p, nil
	}
	return nil, "", fmt.Errorf("%w for %s (expected %s)", ErrNoSidecar, audioPath, SidecarPaths(audioPath)[0])
}

// Load reads and parses a sidecar file, dispatching on its extension.
func Load(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis sidecar: %w", err)
	}
	return ParseSidecar(path, data)
}

// ParseSidecar parses already-read sidecar bytes, dispatching on the path's
// extension. Useful when the caller holds the raw bytes for cache keying.
func ParseSidecar(path string, data []byte) (*Analysis, error) {
	var a *Analysis
	var err error
	if strings.HasSuffix(path, extMsgpack) {
		a, err = ParseBinary(data)
	} else {
		a, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Parse decodes a JSON analysis document. Analyzers embedded in scripting
// hosts occasionally emit sloppy JSON (trailing commas, NaN literals); a
// syntax error is retried once through jsonrepair before giving up.
func Parse(data []byte) (*Analysis, error) {
	var a Analysis
	if err := unmarshalJSON(data, &a); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	a.applyDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// ParseBinary decodes a msgpack analysis document, the format used both for
// compact sidecars and for cache entries.
func ParseBinary(data []byte) (*Analysis, error) {
	var a Analysis
	if err := msgpack.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse analysis msgpack: %w", err)
	}
	a.applyDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// MarshalBinary encodes the document as msgpack.
func (a *Analysis) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(a)
}

func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
