/*
 * uBITz enumerator - Descriptor codec: wire decode.
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

package descriptor

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// cursor walks a byte slice field by field. It never panics on a short
// slice; callers check err after the last read.
type cursor struct {
	buf []byte
	pos int
	err error
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.pos+n > len(c.buf) {
		c.err = fmt.Errorf("descriptor: short read at offset %d, want %d bytes", c.pos, n)
		return nil
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *cursor) str(n int) string {
	b := c.take(n)
	if b == nil {
		return ""
	}
	return trimName(b)
}

func trimName(b []byte) string {
	i := 0
	for i < len(b) && b[i] != 0 {
		i++
	}
	return strings.TrimRight(string(b[:i]), " ")
}

func checkMagicType(buf []byte, wantType uint8) bool {
	if len(buf) < 6 {
		return false
	}
	return buf[0] == magic[0] && buf[1] == magic[1] && buf[2] == magic[2] && buf[3] == magic[3] &&
		buf[5] == wantType
}

// DecodeCPU parses a CPULen-byte blob into a CPU descriptor. It verifies
// the magic and device-type tag only; width range checks are the
// validator's job.
func DecodeCPU(buf []byte) (CPU, error) {
	if !checkMagicType(buf, TypeCPU) {
		return CPU{}, ErrDescBad
	}

	c := &cursor{buf: buf}
	c.take(4)       // magic
	c.u8()          // version
	c.u8()          // device_type
	c.take(10)      // reserved1
	manufacturer := c.str(16)
	platformID := c.str(28)
	cpuType := c.u8()
	dataBusWidth := c.u8()
	addrBusWidth := c.u8()
	intAckMode := c.u8()

	cpu := CPU{
		Manufacturer: manufacturer,
		PlatformID:   platformID,
		CPUType:      cpuType,
		DataBusWidth: dataBusWidth,
		AddrBusWidth: addrBusWidth,
		IntAckMode:   intAckMode,
	}
	for i := 0; i < MaxWindows; i++ {
		cpu.Windows[i] = WindowEntry{
			Function: c.u8(),
			Instance: c.u8(),
			IOWin:    c.u32(),
			Mask:     c.u32(),
			OpSel:    OpSel(c.u8()),
			Flags:    c.u8(),
		}
		c.take(2) // reserved
	}
	for i := 0; i < MaxRoutes; i++ {
		cpu.Routes[i] = RouteEntry{
			Function:  c.u8(),
			Instance:  c.u8(),
			Channel:   c.u8(),
			DestPin:   c.u8(),
			Mode:      c.u8(),
			StretchUS: c.u8(),
		}
		c.take(2) // reserved
	}
	if c.err != nil {
		return CPU{}, ErrDescBad
	}
	return cpu, nil
}

// DecodeBank parses a BankLen-byte blob into a Bank descriptor. It
// verifies magic, device-type, and spec_version.
func DecodeBank(buf []byte) (Bank, error) {
	if !checkMagicType(buf, TypeBank) {
		return Bank{}, ErrDescBad
	}
	if len(buf) < 5 || buf[4] != BankSpecVersion {
		return Bank{}, ErrDescBad
	}

	c := &cursor{buf: buf}
	c.take(4)  // magic
	c.u8()     // spec_version
	c.u8()     // device_type
	c.take(10) // reserved1

	bank := Bank{
		VendorID:     c.str(16),
		BoardID:      c.str(16),
		Revision:     c.u8(),
		RAMAddrWidth: c.u8(),
		ROMAddrWidth: c.u8(),
		DataBusWidth: c.u8(),
	}
	if c.err != nil {
		return Bank{}, ErrDescBad
	}
	return bank, nil
}

// DecodePeripheral parses a PeripheralLen-byte blob into a Peripheral
// descriptor, carrying up to MaxInstances device instances.
func DecodePeripheral(buf []byte) (Peripheral, error) {
	if !checkMagicType(buf, TypePeripheral) {
		return Peripheral{}, ErrDescBad
	}

	c := &cursor{buf: buf}
	c.take(4)  // magic
	c.u8()     // version
	c.u8()     // device_type
	c.take(10) // reserved1

	var p Peripheral
	for i := 0; i < MaxInstances; i++ {
		p.Instances[i] = Instance{
			Function:     c.u8(),
			Instance:     c.u8(),
			DataBusWidth: c.u8(),
			AddrBusWidth: c.u8(),
			IntAckMode:   c.u8(),
			IntChannel:   c.u8(),
			HWRevision:   c.u8(),
			FWRevision:   c.u8(),
			Name:         c.str(16),
		}
		c.take(7) // reserved2
	}
	if c.err != nil {
		return Peripheral{}, ErrDescBad
	}
	return p, nil
}
