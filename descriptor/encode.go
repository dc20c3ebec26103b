/*
 * uBITz enumerator - Descriptor codec: wire encode.
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

import "encoding/binary"

// writer is the dual of cursor: it appends fixed-width fields into a
// byte slice that's pre-sized to the target blob length.
type writer struct {
	buf []byte
	pos int
}

func newWriter(n int) *writer { return &writer{buf: make([]byte, n)} }

func (w *writer) putBytes(b []byte) {
	copy(w.buf[w.pos:], b)
	w.pos += len(b)
}

func (w *writer) put8(v uint8) {
	w.buf[w.pos] = v
	w.pos++
}

func (w *writer) put32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

func (w *writer) putStr(s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	w.putBytes(b)
}

func (w *writer) skip(n int) { w.pos += n }

// EncodeCPU renders a CPU descriptor into its CPULen-byte wire form.
// It is the dual of DecodeCPU, used by test harnesses and the
// simulated backplane transport to produce bytes a real configuration
// bus would carry.
func EncodeCPU(cpu CPU) []byte {
	w := newWriter(CPULen)
	w.putBytes(magic[:])
	w.put8(0x00) // version
	w.put8(TypeCPU)
	w.skip(10) // reserved1
	w.putStr(cpu.Manufacturer, 16)
	w.putStr(cpu.PlatformID, 28)
	w.put8(cpu.CPUType)
	w.put8(cpu.DataBusWidth)
	w.put8(cpu.AddrBusWidth)
	w.put8(cpu.IntAckMode)
	for _, win := range cpu.Windows {
		w.put8(win.Function)
		w.put8(win.Instance)
		w.put32(win.IOWin)
		w.put32(win.Mask)
		w.put8(uint8(win.OpSel))
		w.put8(win.Flags)
		w.skip(2)
	}
	for _, r := range cpu.Routes {
		w.put8(r.Function)
		w.put8(r.Instance)
		w.put8(r.Channel)
		w.put8(r.DestPin)
		w.put8(r.Mode)
		w.put8(r.StretchUS)
		w.skip(2)
	}
	return w.buf
}

// EncodeBank renders a Bank descriptor into its BankLen-byte wire form.
func EncodeBank(bank Bank) []byte {
	w := newWriter(BankLen)
	w.putBytes(magic[:])
	w.put8(BankSpecVersion)
	w.put8(TypeBank)
	w.skip(10)
	w.putStr(bank.VendorID, 16)
	w.putStr(bank.BoardID, 16)
	w.put8(bank.Revision)
	w.put8(bank.RAMAddrWidth)
	w.put8(bank.ROMAddrWidth)
	w.put8(bank.DataBusWidth)
	return w.buf
}

// EncodePeripheral renders a Peripheral descriptor into its
// PeripheralLen-byte wire form.
func EncodePeripheral(p Peripheral) []byte {
	w := newWriter(PeripheralLen)
	w.putBytes(magic[:])
	w.put8(0x00) // version
	w.put8(TypePeripheral)
	w.skip(10)
	for _, inst := range p.Instances {
		w.put8(inst.Function)
		w.put8(inst.Instance)
		w.put8(inst.DataBusWidth)
		w.put8(inst.AddrBusWidth)
		w.put8(inst.IntAckMode)
		w.put8(inst.IntChannel)
		w.put8(inst.HWRevision)
		w.put8(inst.FWRevision)
		w.putStr(inst.Name, 16)
		w.skip(7)
	}
	return w.buf
}
