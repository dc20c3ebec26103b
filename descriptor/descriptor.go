/*
 * uBITz enumerator - Descriptor codec.
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

// Package descriptor decodes the fixed-layout binary self-description
// records (CPU, memory bank, peripheral tile) read off the uBITz
// configuration bus, and defines the table capacities that the CPLD
// programming layout in package bus is built around.
package descriptor

import "fmt"

// Card device-type tags, as carried in byte 5 of every descriptor.
const (
	TypeCPU        uint8 = 0x01
	TypePeripheral uint8 = 0x02
	TypeBank       uint8 = 0x03
)

// Fixed blob lengths read from the configuration bus.
const (
	CPULen        = 416
	BankLen       = 256
	PeripheralLen = 256
)

// Table capacities. The CPLD decoder address layout (0x00-0x9F) assumes
// at most MaxWindows window slots; changing this requires re-deriving
// the dec_write address map in package bus.
const (
	MaxWindows    = 16
	MaxRoutes     = 16
	MaxInstances  = 7
	MaxTiles      = 5
	MaxIRQRecords = 32
)

// BankSpecVersion is the only spec_version this codec understands.
const BankSpecVersion uint8 = 0x01

// OpSel selects which bus operation a decode window responds to.
type OpSel uint8

const (
	OpWrite OpSel = 0x00
	OpRead  OpSel = 0x01
	OpAny   OpSel = 0xFF
)

// Window flag bits.
const FlagRequired uint8 = 0x01

// Interrupt channel bitmask bits: low two bits are maskable channels,
// bit 4 is the non-maskable channel.
const (
	ChanMaskCH0 uint8 = 0x01
	ChanMaskCH1 uint8 = 0x02
	ChanMaskNMI uint8 = 0x10
)

var magic = [4]byte{'U', 'P', 'C', 'I'}

// ErrDescBad reports a magic, type, or version mismatch in a decoded
// blob. The validator owns everything past this point.
var ErrDescBad = fmt.Errorf("descriptor: bad magic/type/version")

// WindowEntry is one CPU-declared I/O decode window.
type WindowEntry struct {
	Function uint8
	Instance uint8
	IOWin    uint32
	Mask     uint32
	OpSel    OpSel
	Flags    uint8
}

// Empty reports whether this window entry is an unused table slot.
func (w WindowEntry) Empty() bool { return w.Function == 0x00 }

// Required reports whether decoding fails if no device matches.
func (w WindowEntry) Required() bool { return w.Flags&FlagRequired != 0 }

// RouteEntry is one CPU-declared interrupt route.
type RouteEntry struct {
	Function  uint8
	Instance  uint8
	Channel   uint8
	DestPin   uint8
	Mode      uint8
	StretchUS uint8
}

// Empty reports whether this route entry is an unused table slot.
func (r RouteEntry) Empty() bool { return r.Function == 0x00 }

// CPU is the platform's single CPU card descriptor.
type CPU struct {
	Manufacturer string
	PlatformID   string
	CPUType      uint8
	DataBusWidth uint8
	AddrBusWidth uint8
	IntAckMode   uint8
	Windows      [MaxWindows]WindowEntry
	Routes       [MaxRoutes]RouteEntry
}

// Bank is the platform's single memory-bank card descriptor.
type Bank struct {
	VendorID     string
	BoardID      string
	Revision     uint8
	RAMAddrWidth uint8
	ROMAddrWidth uint8
	DataBusWidth uint8
}

// Instance is one logical device instance declared by a peripheral tile.
type Instance struct {
	Function     uint8
	Instance     uint8
	DataBusWidth uint8
	AddrBusWidth uint8
	IntAckMode   uint8
	IntChannel   uint8
	HWRevision   uint8
	FWRevision   uint8
	Name         string
}

// Empty reports whether this instance sub-record is unused.
func (i Instance) Empty() bool { return i.Function == 0x00 }

// Peripheral is one tile-slot descriptor, holding up to MaxInstances
// device instances.
type Peripheral struct {
	Instances [MaxInstances]Instance
}
