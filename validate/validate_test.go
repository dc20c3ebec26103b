/*
 * uBITz enumerator - Validator tests.
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

package validate

import (
	"testing"

	"github.com/ubitz/enumerator/descriptor"
)

func TestCPUOk(t *testing.T) {
	cases := []struct {
		name string
		cpu  descriptor.CPU
		want bool
	}{
		{"valid 16/16", descriptor.CPU{DataBusWidth: 16, AddrBusWidth: 16}, true},
		{"valid 8/32", descriptor.CPU{DataBusWidth: 8, AddrBusWidth: 32}, true},
		{"bad data width", descriptor.CPU{DataBusWidth: 12, AddrBusWidth: 16}, false},
		{"bad addr width", descriptor.CPU{DataBusWidth: 16, AddrBusWidth: 24}, false},
		{"zero widths", descriptor.CPU{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CPUOk(c.cpu); got != c.want {
				t.Errorf("CPUOk(%+v) = %v, want %v", c.cpu, got, c.want)
			}
		})
	}
}

func TestBankOkVsCPU(t *testing.T) {
	cpu := descriptor.CPU{DataBusWidth: 16}
	if !BankOkVsCPU(descriptor.Bank{DataBusWidth: 16}, cpu) {
		t.Error("matching bank/cpu width should pass")
	}
	if BankOkVsCPU(descriptor.Bank{DataBusWidth: 8}, cpu) {
		t.Error("mismatched bank/cpu width should fail")
	}
}

func TestInstanceWidthOK(t *testing.T) {
	cpu := descriptor.CPU{DataBusWidth: 16}
	if !InstanceWidthOK(descriptor.Instance{DataBusWidth: 8}, cpu) {
		t.Error("narrower instance width should pass")
	}
	if !InstanceWidthOK(descriptor.Instance{DataBusWidth: 16}, cpu) {
		t.Error("equal instance width should pass")
	}
	if InstanceWidthOK(descriptor.Instance{DataBusWidth: 32}, cpu) {
		t.Error("wider instance width should fail")
	}
}
