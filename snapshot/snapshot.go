/*
 * uBITz enumerator - Enumeration snapshot store.
 *
 * Copyright 2026, uBITz contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package snapshot holds the process-wide record of the last
// enumeration outcome: success flag, failure reason, the three
// descriptor kinds, and the derived bindings. It is written exactly
// once per boot and read many times by the operator console.
package snapshot

import (
	"sync"

	"github.com/ubitz/enumerator/descriptor"
	"github.com/ubitz/enumerator/mapper"
)

// FailReason is the closed enumeration failure taxonomy. Every pipeline
// step maps its local failure to exactly one member.
type FailReason int

const (
	OK FailReason = iota
	CpuDescBad
	BankDescBad
	BankWidthMismatch
	WindowCollision
	RequiredWindowMissing
	RouteDuplicate
	RouteMissing
	DevWidthIncompat
	I2cError
	UnknownFail
)

// String returns the stable external error token for a failure reason,
// as surfaced by the console's showerrors command.
func (r FailReason) String() string {
	switch r {
	case OK:
		return "OK"
	case CpuDescBad:
		return "cpu_desc_bad"
	case BankDescBad:
		return "bank_desc_bad"
	case BankWidthMismatch:
		return "bank_width_mismatch"
	case WindowCollision:
		return "window_collision"
	case RequiredWindowMissing:
		return "required_window_missing"
	case RouteDuplicate:
		return "route_duplicate"
	case RouteMissing:
		return "route_missing"
	case DevWidthIncompat:
		return "dev_width_incompat"
	case I2cError:
		return "i2c_error"
	default:
		return "unknown_fail"
	}
}

// Snapshot is an immutable copy of the store's state at the instant it
// was read.
type Snapshot struct {
	Success    bool
	FailReason FailReason
	CPU        descriptor.CPU
	Bank       descriptor.Bank
	Tiles      []mapper.Tile
	Windows    []mapper.WindowBinding
	IRQs       []mapper.IRQBinding
}

// Store is the single process-wide enumeration record. Zero value is
// ready to use after a Reset call.
type Store struct {
	mu   sync.RWMutex
	data Snapshot
}

// Reset zeroes the record and sets the failure reason to UnknownFail,
// matching the firmware's boot-time memset-then-mark-unknown sequence.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = Snapshot{FailReason: UnknownFail}
}

// SetFailure marks the record as failed with the given reason, leaving
// any previously observed descriptor and binding fields untouched.
func (s *Store) SetFailure(reason FailReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Success = false
	s.data.FailReason = reason
}

// Publish marks the record as succeeded and stores the descriptors and
// bindings, clamped to MaxTiles / MaxWindows / MaxIRQRecords. After
// Publish the record is meant to be treated as immutable by callers.
func (s *Store) Publish(cpu descriptor.CPU, bank descriptor.Bank, tiles []mapper.Tile, windows []mapper.WindowBinding, irqs []mapper.IRQBinding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Success = true
	s.data.FailReason = OK
	s.data.CPU = cpu
	s.data.Bank = bank
	s.data.Tiles = clamp(tiles, descriptor.MaxTiles)
	s.data.Windows = clamp(windows, descriptor.MaxWindows)
	s.data.IRQs = clamp(irqs, descriptor.MaxIRQRecords)
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func clamp[T any](in []T, max int) []T {
	if len(in) <= max {
		out := make([]T, len(in))
		copy(out, in)
		return out
	}
	out := make([]T, max)
	copy(out, in[:max])
	return out
}
