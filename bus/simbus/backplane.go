/*
 * uBITz enumerator - Simulated backplane transport.
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

// Package simbus is a software stand-in for the configuration bus, the
// CPLD programming transport, and the reset line, all backed by one
// in-memory backplane image. It lets the orchestrator and console be
// exercised without real dock hardware.
package simbus

import (
	"fmt"

	"github.com/ubitz/enumerator/bus"
	"github.com/ubitz/enumerator/descriptor"
)

// WriteRecord is one latched (address, data) pair, tagged by which CPLD
// region it targeted. Tests assert against the ordered Trace to check
// that re-programming the same tables is idempotent.
type WriteRecord struct {
	Region string // "dec" or "irq"
	Addr   uint8
	Data   uint8
}

// Backplane implements bus.ConfigBus, bus.CpldProgrammer and
// bus.ResetLine over an in-memory card image loaded from a text config
// file. It is not safe for concurrent use from multiple goroutines.
type Backplane struct {
	cpu      descriptor.CPU
	bank     descriptor.Bank
	tiles    [descriptor.MaxTiles]descriptor.Peripheral
	present  [descriptor.MaxTiles]bool
	haveCPU  bool
	haveBank bool

	resetAsserted bool
	Trace         []WriteRecord
}

// NewBackplane returns an empty backplane with no cards populated.
func NewBackplane() *Backplane {
	return &Backplane{}
}

// Init satisfies bus.ConfigBus and bus.CpldProgrammer; the simulated
// bus needs no setup.
func (bp *Backplane) Init() error { return nil }

// Read returns the encoded descriptor blob for the CPU, bank, or one of
// the tile slot addresses. An unpopulated tile slot, or any other
// address, reports bus.ErrNoDevice.
func (bp *Backplane) Read(addr uint8, buf []byte) error {
	switch {
	case addr == bus.CPUAddr:
		if !bp.haveCPU {
			return bus.ErrNoDevice
		}
		return copyBlob(buf, descriptor.EncodeCPU(bp.cpu))
	case addr == bus.BankAddr:
		if !bp.haveBank {
			return bus.ErrNoDevice
		}
		return copyBlob(buf, descriptor.EncodeBank(bp.bank))
	case addr >= bus.TileBaseAddr && int(addr-bus.TileBaseAddr) < descriptor.MaxTiles:
		slot := addr - bus.TileBaseAddr
		if !bp.present[slot] {
			return bus.ErrNoDevice
		}
		return copyBlob(buf, descriptor.EncodePeripheral(bp.tiles[slot]))
	default:
		return bus.ErrNoDevice
	}
}

func copyBlob(dst, src []byte) error {
	if len(dst) != len(src) {
		return fmt.Errorf("simbus: buffer length %d, want %d", len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// DecWrite latches one byte into the simulated decoder region and
// appends it to the trace.
func (bp *Backplane) DecWrite(addr, data uint8) {
	bp.Trace = append(bp.Trace, WriteRecord{Region: "dec", Addr: addr, Data: data})
}

// IrqWrite latches one byte into the simulated IRQ-router region and
// appends it to the trace.
func (bp *Backplane) IrqWrite(addr, data uint8) {
	bp.Trace = append(bp.Trace, WriteRecord{Region: "irq", Addr: addr, Data: data})
}

// Assert drives the simulated reset line low.
func (bp *Backplane) Assert() { bp.resetAsserted = true }

// Release drives the simulated reset line high.
func (bp *Backplane) Release() { bp.resetAsserted = false }

// ResetAsserted reports the current state of the simulated reset line,
// for test assertions about reset sequencing.
func (bp *Backplane) ResetAsserted() bool { return bp.resetAsserted }

// PresentSlots reports which of the MaxTiles slots have a card loaded.
func (bp *Backplane) PresentSlots() []uint8 {
	var out []uint8
	for i, p := range bp.present {
		if p {
			out = append(out, uint8(i))
		}
	}
	return out
}

// ClearTrace empties the recorded write trace, letting a test isolate
// the writes made by a single orchestrator run.
func (bp *Backplane) ClearTrace() { bp.Trace = nil }
