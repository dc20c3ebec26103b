/*
 * uBITz enumerator - Descriptor codec tests.
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
	"errors"
	"testing"
)

func sampleCPU() CPU {
	cpu := CPU{
		Manufacturer: "ACME",
		PlatformID:   "UBITZ-1",
		CPUType:      0x01,
		DataBusWidth: 16,
		AddrBusWidth: 16,
		IntAckMode:   0,
	}
	cpu.Windows[0] = WindowEntry{
		Function: 0x20, Instance: 0,
		IOWin: 0x0000E000, Mask: 0xFFFFF000,
		OpSel: OpRead, Flags: FlagRequired,
	}
	cpu.Routes[0] = RouteEntry{
		Function: 0x20, Instance: 0,
		Channel: ChanMaskCH0, DestPin: 0x02, Mode: 0, StretchUS: 0,
	}
	return cpu
}

func TestCPURoundTrip(t *testing.T) {
	want := sampleCPU()
	buf := EncodeCPU(want)
	if len(buf) != CPULen {
		t.Fatalf("EncodeCPU length = %d, want %d", len(buf), CPULen)
	}

	got, err := DecodeCPU(buf)
	if err != nil {
		t.Fatalf("DecodeCPU: %v", err)
	}
	if got.Manufacturer != want.Manufacturer || got.PlatformID != want.PlatformID {
		t.Errorf("identity fields mismatch: got %+v", got)
	}
	if got.DataBusWidth != want.DataBusWidth || got.AddrBusWidth != want.AddrBusWidth {
		t.Errorf("bus widths mismatch: got %+v", got)
	}
	if got.Windows[0] != want.Windows[0] {
		t.Errorf("window[0] = %+v, want %+v", got.Windows[0], want.Windows[0])
	}
	if got.Routes[0] != want.Routes[0] {
		t.Errorf("route[0] = %+v, want %+v", got.Routes[0], want.Routes[0])
	}
}

func TestBankRoundTrip(t *testing.T) {
	want := Bank{
		VendorID: "ACME", BoardID: "BANK1",
		Revision: 0x01, RAMAddrWidth: 16, ROMAddrWidth: 16, DataBusWidth: 16,
	}
	buf := EncodeBank(want)
	if len(buf) != BankLen {
		t.Fatalf("EncodeBank length = %d, want %d", len(buf), BankLen)
	}
	got, err := DecodeBank(buf)
	if err != nil {
		t.Fatalf("DecodeBank: %v", err)
	}
	if got != want {
		t.Errorf("DecodeBank(EncodeBank(x)) = %+v, want %+v", got, want)
	}
}

func TestPeripheralRoundTrip(t *testing.T) {
	var want Peripheral
	want.Instances[0] = Instance{
		Function: 0x20, Instance: 0,
		DataBusWidth: 8, AddrBusWidth: 8,
		IntAckMode: 0, IntChannel: ChanMaskCH0,
		HWRevision: 1, FWRevision: 1,
		Name: "SERIAL0",
	}
	buf := EncodePeripheral(want)
	if len(buf) != PeripheralLen {
		t.Fatalf("EncodePeripheral length = %d, want %d", len(buf), PeripheralLen)
	}
	got, err := DecodePeripheral(buf)
	if err != nil {
		t.Fatalf("DecodePeripheral: %v", err)
	}
	if got.Instances[0] != want.Instances[0] {
		t.Errorf("instance[0] = %+v, want %+v", got.Instances[0], want.Instances[0])
	}
	for i := 1; i < MaxInstances; i++ {
		if !got.Instances[i].Empty() {
			t.Errorf("instance[%d] should be empty, got %+v", i, got.Instances[i])
		}
	}
}

func TestDecodeCPUBadMagic(t *testing.T) {
	buf := EncodeCPU(sampleCPU())
	buf[0] = 'X'
	if _, err := DecodeCPU(buf); !errors.Is(err, ErrDescBad) {
		t.Errorf("DecodeCPU with bad magic: err = %v, want ErrDescBad", err)
	}
}

func TestDecodeCPUBadType(t *testing.T) {
	buf := EncodeCPU(sampleCPU())
	buf[5] = TypeBank
	if _, err := DecodeCPU(buf); !errors.Is(err, ErrDescBad) {
		t.Errorf("DecodeCPU with wrong type tag: err = %v, want ErrDescBad", err)
	}
}

func TestDecodeBankBadVersion(t *testing.T) {
	buf := EncodeBank(Bank{DataBusWidth: 16})
	buf[4] = 0x02
	if _, err := DecodeBank(buf); !errors.Is(err, ErrDescBad) {
		t.Errorf("DecodeBank with wrong spec_version: err = %v, want ErrDescBad", err)
	}
}

func TestWindowEntryRequiredFlag(t *testing.T) {
	w := WindowEntry{Flags: FlagRequired}
	if !w.Required() {
		t.Error("Required() = false, want true for FlagRequired set")
	}
	w.Flags = 0
	if w.Required() {
		t.Error("Required() = true, want false with no flags set")
	}
}

func TestEmptySlotDetection(t *testing.T) {
	var w WindowEntry
	if !w.Empty() {
		t.Error("zero-value WindowEntry should be Empty")
	}
	var r RouteEntry
	if !r.Empty() {
		t.Error("zero-value RouteEntry should be Empty")
	}
	var i Instance
	if !i.Empty() {
		t.Error("zero-value Instance should be Empty")
	}
}
