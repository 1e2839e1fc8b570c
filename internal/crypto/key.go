// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

package crypto

// Key is a zeroizable wrapper around derived key material. The session
// guard holds the only long-lived reference and calls Zero on lock; after
// that every use through Bytes sees an empty slice, not stale key bytes.
type Key struct {
	material []byte
}

// NewKey wraps material in a Key. The Key takes ownership of the slice.
func NewKey(material []byte) *Key {
	return &Key{material: material}
}

// Bytes returns the raw key material, or nil after Zero has been called.
// Callers must not retain the slice across a lock transition.
func (k *Key) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.material
}

// Zero overwrites the key material in place and drops the reference.
// Safe to call more than once.
func (k *Key) Zero() {
	if k == nil {
		return
	}
	for i := range k.material {
		k.material[i] = 0
	}
	k.material = nil
}
