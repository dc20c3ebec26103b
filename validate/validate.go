/*
 * uBITz enumerator - Structural and cross-card validation.
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

// Package validate holds the structural predicates the codec doesn't:
// bus-width range checks and bank/CPU width agreement. Window and route
// uniqueness live in package mapper, since they're only ever consulted
// right before building the corresponding binding list.
package validate

import "github.com/ubitz/enumerator/descriptor"

func busWidthOK(w uint8) bool {
	return w == 8 || w == 16 || w == 32
}

// CPUOk reports whether a decoded CPU descriptor's bus widths are one of
// the three widths the platform supports. Magic/type are already
// guaranteed by descriptor.DecodeCPU having returned no error.
func CPUOk(cpu descriptor.CPU) bool {
	return busWidthOK(cpu.DataBusWidth) && busWidthOK(cpu.AddrBusWidth)
}

// BankOkVsCPU reports whether a decoded Bank descriptor's data-bus width
// agrees with the CPU's. Magic/type/spec_version are already guaranteed
// by descriptor.DecodeBank.
func BankOkVsCPU(bank descriptor.Bank, cpu descriptor.CPU) bool {
	return bank.DataBusWidth == cpu.DataBusWidth
}

// InstanceWidthOK reports whether a device instance's data-bus width can
// be driven by the CPU's data bus.
func InstanceWidthOK(inst descriptor.Instance, cpu descriptor.CPU) bool {
	return inst.DataBusWidth <= cpu.DataBusWidth
}
