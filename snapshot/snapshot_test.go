/*
 * uBITz enumerator - Snapshot store tests.
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

package snapshot

import (
	"sync"
	"testing"

	"github.com/ubitz/enumerator/descriptor"
	"github.com/ubitz/enumerator/mapper"
)

func TestResetSetsUnknownFail(t *testing.T) {
	var s Store
	s.Reset()
	got := s.Get()
	if got.Success {
		t.Error("Reset: Success should be false")
	}
	if got.FailReason != UnknownFail {
		t.Errorf("Reset: FailReason = %v, want UnknownFail", got.FailReason)
	}
}

func TestSetFailurePreservesPriorFields(t *testing.T) {
	var s Store
	s.Publish(descriptor.CPU{CPUType: 0x01}, descriptor.Bank{}, nil, nil, nil)
	s.SetFailure(RouteMissing)

	got := s.Get()
	if got.Success {
		t.Error("SetFailure: Success should be false")
	}
	if got.FailReason != RouteMissing {
		t.Errorf("SetFailure: FailReason = %v, want RouteMissing", got.FailReason)
	}
	if got.CPU.CPUType != 0x01 {
		t.Errorf("SetFailure overwrote CPU field: got %+v", got.CPU)
	}
}

func TestPublishSuccess(t *testing.T) {
	var s Store
	windows := []mapper.WindowBinding{{Slot: 1, WidthOK: true}}
	s.Publish(descriptor.CPU{}, descriptor.Bank{}, nil, windows, nil)

	got := s.Get()
	if !got.Success || got.FailReason != OK {
		t.Errorf("Publish: got Success=%v FailReason=%v, want true/OK", got.Success, got.FailReason)
	}
	if len(got.Windows) != 1 {
		t.Errorf("len(Windows) = %d, want 1", len(got.Windows))
	}
}

func TestPublishClampsCapacities(t *testing.T) {
	var s Store
	tiles := make([]mapper.Tile, descriptor.MaxTiles+3)
	windows := make([]mapper.WindowBinding, descriptor.MaxWindows+3)
	irqs := make([]mapper.IRQBinding, descriptor.MaxIRQRecords+3)

	s.Publish(descriptor.CPU{}, descriptor.Bank{}, tiles, windows, irqs)

	got := s.Get()
	if len(got.Tiles) != descriptor.MaxTiles {
		t.Errorf("len(Tiles) = %d, want %d", len(got.Tiles), descriptor.MaxTiles)
	}
	if len(got.Windows) != descriptor.MaxWindows {
		t.Errorf("len(Windows) = %d, want %d", len(got.Windows), descriptor.MaxWindows)
	}
	if len(got.IRQs) != descriptor.MaxIRQRecords {
		t.Errorf("len(IRQs) = %d, want %d", len(got.IRQs), descriptor.MaxIRQRecords)
	}
}

func TestFailReasonStringTokens(t *testing.T) {
	cases := map[FailReason]string{
		OK:                     "OK",
		CpuDescBad:             "cpu_desc_bad",
		BankDescBad:            "bank_desc_bad",
		BankWidthMismatch:      "bank_width_mismatch",
		WindowCollision:        "window_collision",
		RequiredWindowMissing:  "required_window_missing",
		RouteDuplicate:         "route_duplicate",
		RouteMissing:           "route_missing",
		DevWidthIncompat:       "dev_width_incompat",
		I2cError:               "i2c_error",
		UnknownFail:            "unknown_fail",
		FailReason(999):        "unknown_fail",
	}
	for reason, want := range cases {
		if got := reason.String(); got != want {
			t.Errorf("FailReason(%d).String() = %q, want %q", reason, got, want)
		}
	}
}

func TestConcurrentGetDuringPublish(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.Publish(descriptor.CPU{}, descriptor.Bank{}, nil, nil, nil)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.Get()
		}
	}()
	wg.Wait()
}
