/*
 * uBITz enumerator - Operator console.
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

// Package console implements the line-oriented operator text protocol:
// four read-only snapshot queries and a reset verb that re-enters the
// pipeline. Dispatch follows a small verb-keyed table, in the shape of
// the teacher's command parser, simplified since this protocol has no
// abbreviation matching.
package console

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/ubitz/enumerator/snapshot"
)

// Runner re-enters the enumeration pipeline for the reset verb.
type Runner interface {
	Run() error
}

// Console dispatches lines read from r to the five supported verbs,
// writing their output to w.
type Console struct {
	r     io.Reader
	w     io.Writer
	store *snapshot.Store
	run   Runner
}

// New builds a Console reading commands from r, writing output to w,
// reporting against store, and re-running the pipeline via run on the
// reset verb.
func New(r io.Reader, w io.Writer, store *snapshot.Store, run Runner) *Console {
	return &Console{r: r, w: w, store: store, run: run}
}

var dispatch = map[string]func(*Console, []string) error{
	"lstiles":    (*Console).lstiles,
	"showhost":   (*Console).showhost,
	"showbank":   (*Console).showbank,
	"showerrors": (*Console).showerrors,
	"reset":      (*Console).reset,
}

// Serve reads one command per line from the console's reader until EOF,
// dispatching each to its handler and writing `unknown command: <verb>`
// for anything not in the table.
func (c *Console) Serve() error {
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		verb := fields[0]
		handler, ok := dispatch[verb]
		if !ok {
			fmt.Fprintf(c.w, "unknown command: %s\n", verb)
			continue
		}
		if err := handler(c, fields[1:]); err != nil {
			fmt.Fprintf(c.w, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *Console) lstiles([]string) error {
	snap := c.store.Get()

	var lines []string
	for _, t := range snap.Tiles {
		for _, inst := range t.Desc.Instances {
			if inst.Empty() {
				continue
			}
			lines = append(lines, fmt.Sprintf(
				"slot=%d func=0x%02x inst=%d dbw=%d abw=%d int_mask=0x%02x name=%s",
				t.Slot, inst.Function, inst.Instance, inst.DataBusWidth, inst.AddrBusWidth,
				inst.IntChannel, inst.Name))
		}
	}

	fmt.Fprintf(c.w, "tiles: count=%d\n", len(lines))
	for _, l := range lines {
		fmt.Fprintln(c.w, l)
	}
	return nil
}

func (c *Console) showhost([]string) error {
	snap := c.store.Get()
	cpu := snap.CPU

	fmt.Fprintf(c.w, "host: platform=%s manufacturer=%s cputype=0x%02x dbw=%d abw=%d intack=%d\n",
		cpu.PlatformID, cpu.Manufacturer, cpu.CPUType, cpu.DataBusWidth, cpu.AddrBusWidth, cpu.IntAckMode)

	for i, win := range cpu.Windows {
		if win.Empty() {
			continue
		}
		fmt.Fprintf(c.w, "win[%d]: func=0x%02x inst=%d iowin=0x%08x mask=0x%08x opsel=0x%02x flags=0x%02x\n",
			i, win.Function, win.Instance, win.IOWin, win.Mask, uint8(win.OpSel), win.Flags)
	}
	for i, r := range cpu.Routes {
		if r.Empty() {
			continue
		}
		fmt.Fprintf(c.w, "irq[%d]: func=0x%02x inst=%d chan=0x%02x dest=0x%02x mode=%d stretch=%d\n",
			i, r.Function, r.Instance, r.Channel, r.DestPin, r.Mode, r.StretchUS)
	}
	return nil
}

func (c *Console) showbank([]string) error {
	bank := c.store.Get().Bank
	fmt.Fprintf(c.w, "bank: vendor=%s board=%s rev=0x%02x ram_aw=%d rom_aw=%d dbw=%d\n",
		bank.VendorID, bank.BoardID, bank.Revision, bank.RAMAddrWidth, bank.ROMAddrWidth, bank.DataBusWidth)
	return nil
}

func (c *Console) showerrors([]string) error {
	snap := c.store.Get()
	successFlag := 0
	if snap.Success {
		successFlag = 1
	}
	fmt.Fprintf(c.w, "enum success=%d reason=%s\n", successFlag, snap.FailReason.String())

	for i, wb := range snap.Windows {
		widthOK := 0
		if wb.WidthOK {
			widthOK = 1
		}
		fmt.Fprintf(c.w, "winbind[%d]: func=0x%02x inst=%d slot=%d mask_pop=%d width_ok=%d\n",
			i, wb.Window.Function, wb.Window.Instance, wb.Slot, bits.OnesCount32(wb.Window.Mask), widthOK)
	}
	return nil
}

func (c *Console) reset([]string) error {
	fmt.Fprintln(c.w, "resetting")
	err := c.run.Run()
	if err != nil {
		fmt.Fprintf(c.w, "reset failed: %v\n", err)
	}
	return nil
}
