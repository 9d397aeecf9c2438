// Package snapshot encodes mind map snapshots into a canonical binary form
// and derives content fingerprints from it.
//
// Encoding uses CBOR Core Deterministic Encoding (sorted map keys, shortest
// forms), so the same document always produces identical bytes regardless
// of Go map iteration order. The fingerprint is the BLAKE3-256 digest of
// those bytes.
package snapshot

import (
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode returns the canonical encoding of m.
func Encode(m *domain.MindMap) ([]byte, error) {
	if m == nil {
		m = domain.NewMindMap()
	}
	data, err := encMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a canonical encoding back into a MindMap.
func Decode(data []byte) (*domain.MindMap, error) {
	m := domain.NewMindMap()
	if err := decMode.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if m.Nodes == nil {
		m.Nodes = make(map[string]*domain.Node)
	}
	return m, nil
}

// Fingerprint returns the hex BLAKE3-256 digest of the canonical encoding.
func Fingerprint(m *domain.MindMap) (string, error) {
	data, err := Encode(m)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Equal reports whether two snapshots have the same canonical encoding.
func Equal(a, b *domain.MindMap) bool {
	if a == b {
		return true
	}
	fa, errA := Fingerprint(a)
	fb, errB := Fingerprint(b)
	return errA == nil && errB == nil && fa == fb
}
