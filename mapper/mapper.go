/*
 * uBITz enumerator - Shared mapper types and collision checks.
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

// Package mapper matches the CPU's declared decode windows and
// interrupt routes against the device instances actually present on
// the backplane, and orders the resulting bindings by specificity for
// CPLD programming.
package mapper

import (
	"errors"

	"github.com/ubitz/enumerator/descriptor"
)

// ErrWindowCollision is returned by WindowsUnique (and, via
// BuildWindowBindings, propagated from it) when two non-empty windows
// share (base, mask, opsel) but name different (function, instance).
var ErrWindowCollision = errors.New("mapper: ambiguous window collision")

// ErrRouteDuplicate is returned by RoutesUnique (and, via
// BuildIRQBindings, propagated from it) when two non-empty routes share
// (function, instance, channel).
var ErrRouteDuplicate = errors.New("mapper: duplicate route entry")

// ErrRequiredWindowMissing means a Required window has no matching
// device instance anywhere on the backplane.
var ErrRequiredWindowMissing = errors.New("mapper: required window has no matching device")

// ErrRouteMissing means a declared device interrupt channel has no
// matching CPU route entry.
var ErrRouteMissing = errors.New("mapper: declared interrupt channel has no route")

// Tile pairs a decoded peripheral descriptor with the physical slot it
// was read from.
type Tile struct {
	Slot uint8
	Desc descriptor.Peripheral
}

// WindowBinding is a resolved (window, target slot) pairing.
type WindowBinding struct {
	Window  descriptor.WindowEntry
	Slot    uint8
	WidthOK bool
}

// IRQBinding is a resolved (route, target slot) pairing.
type IRQBinding struct {
	Route descriptor.RouteEntry
	Slot  uint8
}

// WindowsUnique checks the CPU window table for ambiguous decode
// collisions: two non-empty entries sharing (base, mask, opsel) but
// naming different (function, instance). It is the single place this
// scan runs; callers that also want it checked before mapping call it
// directly rather than duplicating the loop.
func WindowsUnique(cpu descriptor.CPU) error {
	for i := 0; i < descriptor.MaxWindows; i++ {
		wi := cpu.Windows[i]
		if wi.Empty() {
			continue
		}
		for j := i + 1; j < descriptor.MaxWindows; j++ {
			wj := cpu.Windows[j]
			if wj.Empty() {
				continue
			}
			if wi.IOWin == wj.IOWin && wi.Mask == wj.Mask && wi.OpSel == wj.OpSel &&
				(wi.Function != wj.Function || wi.Instance != wj.Instance) {
				return ErrWindowCollision
			}
		}
	}
	return nil
}

// RoutesUnique checks the CPU route table for duplicate entries sharing
// (function, instance, channel).
func RoutesUnique(cpu descriptor.CPU) error {
	for i := 0; i < descriptor.MaxRoutes; i++ {
		ri := cpu.Routes[i]
		if ri.Empty() {
			continue
		}
		for j := i + 1; j < descriptor.MaxRoutes; j++ {
			rj := cpu.Routes[j]
			if rj.Empty() {
				continue
			}
			if ri.Function == rj.Function && ri.Instance == rj.Instance && ri.Channel == rj.Channel {
				return ErrRouteDuplicate
			}
		}
	}
	return nil
}
