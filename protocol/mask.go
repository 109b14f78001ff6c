// File: protocol/mask.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Width-tiered XOR masking for WebSocket payloads.
//
// The 4-byte key is replicated into a 64-bit pattern and applied one machine
// word at a time, with a 32-bit tier and a byte-wise tail for short buffers
// and remainders. Replication preserves the key's cyclic phase because 4
// divides every wider tier. All word loads and stores go through
// encoding/binary accessors, which are defined for unaligned addresses.

package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/momentics/wscore/api"
)

// MaskKeyLen is the masking key length RFC 6455 fixes for frames.
const MaskKeyLen = 4

// Mask applies the masking transform to data and returns a freshly allocated
// output of the same length: out[i] = data[i] ^ key[i%4]. The send path owns
// key generation and has already validated its length, so it is not
// re-checked here. data is never modified; masking is its own inverse.
func Mask(key, data []byte) []byte {
	out := make([]byte, len(data))
	xorTo(out, data, key)
	return out
}

// Unmask applies the masking transform on the receive path. A key whose
// length is not exactly MaskKeyLen is a caller bug, surfaced immediately as
// a contract error naming the received length. Zero-length data yields an
// empty, non-nil slice.
func Unmask(key, data []byte) ([]byte, error) {
	if len(key) != MaskKeyLen {
		return nil, api.NewError(api.ErrCodeInvalidArgument,
			fmt.Sprintf("websocket mask must be a key of length %d, not %d", MaskKeyLen, len(key)))
	}
	if len(data) == 0 {
		return []byte{}, nil
	}
	out := make([]byte, len(data))
	xorTo(out, data, key)
	return out, nil
}

// MaskInPlace XORs p in place starting at key phase pos and returns the
// phase for the next chunk, for callers that transform a payload in pieces.
func MaskInPlace(key [MaskKeyLen]byte, p []byte, pos int) int {
	pos &= 3
	i := 0
	for ; i < len(p) && pos != 0; i++ {
		p[i] ^= key[pos]
		pos = (pos + 1) & 3
	}
	rem := p[i:]
	xorTo(rem, rem, key[:])
	return (pos + len(rem)) & 3
}

// xorTo writes src XOR the cycled key into dst. len(dst) >= len(src) and
// len(key) >= 4 whenever src is non-empty; dst may alias src exactly.
func xorTo(dst, src, key []byte) {
	n := len(src)
	if n == 0 {
		return
	}
	i := 0
	if n >= 4 {
		k32 := binary.LittleEndian.Uint32(key)
		k64 := uint64(k32)<<32 | uint64(k32)
		for ; i+8 <= n; i += 8 {
			binary.LittleEndian.PutUint64(dst[i:], binary.LittleEndian.Uint64(src[i:])^k64)
		}
		if i+4 <= n {
			binary.LittleEndian.PutUint32(dst[i:], binary.LittleEndian.Uint32(src[i:])^k32)
			i += 4
		}
	}
	// i is a multiple of 4 here, so key indexing stays in phase.
	for ; i < n; i++ {
		dst[i] = src[i] ^ key[i&3]
	}
}
