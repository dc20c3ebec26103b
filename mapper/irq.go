/*
 * uBITz enumerator - Interrupt-routing mapper.
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

package mapper

import (
	"math/bits"
	"sort"

	"github.com/ubitz/enumerator/descriptor"
)

// channelBits are the declarable channel bits, in the fixed order the
// original routing scan walks them: the two maskable channels, then NMI.
var channelBits = []uint8{descriptor.ChanMaskCH0, descriptor.ChanMaskCH1, descriptor.ChanMaskNMI}

// BuildIRQBindings walks every device instance across tiles and, for
// each channel bit it declares, finds the first matching CPU route
// entry with the same (function, instance) and that bit set. A missing
// match fails with ErrRouteMissing. The result is sorted descending by
// route channel-mask popcount, ties preserving emission order.
func BuildIRQBindings(cpu descriptor.CPU, tiles []Tile) ([]IRQBinding, error) {
	if err := RoutesUnique(cpu); err != nil {
		return nil, err
	}

	var out []IRQBinding
	for _, t := range tiles {
		for _, inst := range t.Desc.Instances {
			if inst.Empty() || inst.IntChannel == 0 {
				continue
			}
			for _, bit := range channelBits {
				if inst.IntChannel&bit == 0 {
					continue
				}
				route, found := findRoute(cpu, inst.Function, inst.Instance, bit)
				if !found {
					return nil, ErrRouteMissing
				}
				out = append(out, IRQBinding{Route: route, Slot: t.Slot})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return bits.OnesCount8(out[i].Route.Channel) > bits.OnesCount8(out[j].Route.Channel)
	})
	return out, nil
}

func findRoute(cpu descriptor.CPU, function, instance, bit uint8) (descriptor.RouteEntry, bool) {
	for _, r := range cpu.Routes {
		if r.Empty() {
			continue
		}
		if r.Function == function && r.Instance == instance && r.Channel&bit != 0 {
			return r, true
		}
	}
	return descriptor.RouteEntry{}, false
}
