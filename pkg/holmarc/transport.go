// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "fmt"

// ErrReadTimeout is returned by Transport.ReadByte when no byte arrived
// within the transport's read timeout.
var ErrReadTimeout = fmt.Errorf("read timed out")

// Transport is a byte-oriented duplex channel to the supply with a bounded
// per-read timeout. The protocol has no framing: every exchange is a single
// byte in each direction.
//
// A Transport is exclusively owned by one Controller; the protocol is
// order-sensitive and no two steps may be in flight at once.
type Transport interface {
	// WriteByte sends a single byte.
	WriteByte(b byte) error

	// ReadByte blocks for at most the transport's read timeout and
	// returns the next byte, or ErrReadTimeout if none arrived.
	ReadByte() (byte, error)

	// FlushInput discards any bytes already buffered on the receive side.
	FlushInput() error
}
