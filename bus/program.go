/*
 * uBITz enumerator - CPLD table programming.
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

package bus

import (
	"github.com/ubitz/enumerator/descriptor"
	"github.com/ubitz/enumerator/mapper"
)

// numSlots is the fixed tile-slot count the IRQ-router address layout
// is built around.
const numSlots = descriptor.MaxTiles

func opEncode(op descriptor.OpSel) uint8 {
	switch op {
	case descriptor.OpRead:
		return 0x01
	case descriptor.OpWrite:
		return 0x00
	default:
		return 0xFF
	}
}

// ProgramDecoder writes the decode-window table into the CPLD's
// 0x00..0x9F decoder region, one slot of four address ranges per
// binding: base (0x00-0x3F), mask (0x40-0x7F), target slot (0x80-0x8F),
// op encoding (0x90-0x9F). Bindings are written in the order given,
// which must already be specificity-sorted.
func ProgramDecoder(p CpldProgrammer, wins []mapper.WindowBinding) {
	for idx, b := range wins {
		w := uint8(idx)
		for byteN := 0; byteN < 4; byteN++ {
			p.DecWrite(0x00+w*4+uint8(byteN), uint8(b.Window.IOWin>>(8*byteN)))
		}
		for byteN := 0; byteN < 4; byteN++ {
			p.DecWrite(0x40+w*4+uint8(byteN), uint8(b.Window.Mask>>(8*byteN)))
		}
		p.DecWrite(0x80+w, b.Slot&0x07)
		p.DecWrite(0x90+w, opEncode(b.Window.OpSel))
	}
}

// ProgramIRQRouter writes the IRQ-routing table. Maskable channels land
// at index slot*2+ch (indices 0..2*numSlots-1); the NMI channel lands
// at index 2*numSlots+slot. One router entry is written per channel bit
// set in the binding's route.
func ProgramIRQRouter(p CpldProgrammer, irqs []mapper.IRQBinding) {
	for _, b := range irqs {
		chmask := b.Route.Channel
		dest := b.Route.DestPin

		if chmask&descriptor.ChanMaskCH0 != 0 {
			p.IrqWrite(b.Slot*2+0, 0x80|(dest&0x0F))
		}
		if chmask&descriptor.ChanMaskCH1 != 0 {
			p.IrqWrite(b.Slot*2+1, 0x80|(dest&0x0F))
		}
		if chmask&descriptor.ChanMaskNMI != 0 {
			nmiDest := dest
			if dest >= 0x10 {
				nmiDest = dest - 0x10
			}
			p.IrqWrite(uint8(numSlots)*2+b.Slot, 0x80|(nmiDest&0x0F))
		}
	}
}
