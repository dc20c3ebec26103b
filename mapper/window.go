/*
 * uBITz enumerator - Decode-window mapper.
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

// BuildWindowBindings matches each non-empty CPU window against the
// device instances present in tiles, in descriptor order then
// sub-record order. A Required window with no match fails with
// ErrRequiredWindowMissing; an optional one is silently dropped. The
// result is sorted descending by mask popcount (specificity-first),
// ties preserving emission order.
func BuildWindowBindings(cpu descriptor.CPU, tiles []Tile) ([]WindowBinding, error) {
	if err := WindowsUnique(cpu); err != nil {
		return nil, err
	}

	var out []WindowBinding
	for i := 0; i < descriptor.MaxWindows; i++ {
		w := cpu.Windows[i]
		if w.Empty() {
			continue
		}

		inst, slot, found := findInstance(tiles, w.Function, w.Instance)
		if !found {
			if w.Required() {
				return nil, ErrRequiredWindowMissing
			}
			continue
		}

		out = append(out, WindowBinding{
			Window:  w,
			Slot:    slot,
			WidthOK: inst.DataBusWidth <= cpu.DataBusWidth,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return bits.OnesCount32(out[i].Window.Mask) > bits.OnesCount32(out[j].Window.Mask)
	})
	return out, nil
}

func findInstance(tiles []Tile, function, instance uint8) (descriptor.Instance, uint8, bool) {
	for _, t := range tiles {
		for _, inst := range t.Desc.Instances {
			if inst.Function == function && inst.Instance == instance {
				return inst, t.Slot, true
			}
		}
	}
	return descriptor.Instance{}, 0, false
}
