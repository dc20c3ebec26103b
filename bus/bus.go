/*
 * uBITz enumerator - External transport interfaces.
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

// Package bus names the three hardware collaborators the orchestrator
// drives but does not implement: the configuration bus the descriptors
// are read from, the CPLD programming transport, and the platform reset
// line. Package bus/simbus provides a software stand-in for all three.
package bus

import "errors"

// ErrNoDevice is the distinguishable "nothing answered at this address"
// signal a ConfigBus reports during peripheral slot probing, as opposed
// to any other transport failure.
var ErrNoDevice = errors.New("bus: no device at address")

// Card addresses on the configuration bus.
const (
	CPUAddr      uint8 = 0x50
	BankAddr     uint8 = 0x51
	TileBaseAddr uint8 = 0x52
)

// ConfigBus reads fixed-length descriptor blobs off the configuration
// bus. Read fills buf entirely or returns an error; ErrNoDevice means no
// card answered at addr, any other error is a bus fault.
type ConfigBus interface {
	Init() error
	Read(addr uint8, buf []byte) error
}

// CpldProgrammer latches (address, byte) pairs into the CPLD's decoder
// and IRQ-router configuration regions.
type CpldProgrammer interface {
	Init() error
	DecWrite(addr, data uint8)
	IrqWrite(addr, data uint8)
}

// ResetLine drives the platform-wide reset signal that holds the host
// CPU, bank, tiles, and decoder quiescent during enumeration.
type ResetLine interface {
	Init() error
	Assert()
	Release()
}
