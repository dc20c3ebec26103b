/*
 * uBITz enumerator - Simulated backplane: text config grammar.
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

package simbus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ubitz/enumerator/descriptor"
)

/* Config file format, one card description per logical line (a
 * trailing '\' joins a physical line with the next):
 *
 * '#' starts a comment; the rest of the line is ignored.
 * <line> := <cpu-line> | <bank-line> | <tile-line>
 * <cpu-line>  := 'cpu'  *(<key>=<value>)   ; may repeat 'win=' and 'irq='
 * <bank-line> := 'bank' *(<key>=<value>)
 * <tile-line> := 'tile' 'slot='<n> *(<key>=<value>)
 *
 * Numbers accept decimal or 0x-prefixed hex. A bare 'req' token inside a
 * win= value sets the Required flag.
 */

// LoadConfigFile parses a backplane config file and returns a populated
// Backplane ready for use as a bus.ConfigBus.
func LoadConfigFile(name string) (*Backplane, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig parses a backplane config from an already-open reader. A
// line ending in '\' is joined with the next physical line before
// field splitting, so a card's key=value pairs can be wrapped across
// several lines for readability.
func ParseConfig(r io.Reader) (*Backplane, error) {
	bp := NewBackplane()
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	var logical strings.Builder
	logicalStart := 0
	for scanner.Scan() {
		lineNumber++
		if logical.Len() == 0 {
			logicalStart = lineNumber
		}
		line := stripComment(scanner.Text())
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, "\\") {
			logical.WriteString(trimmed[:len(trimmed)-1])
			logical.WriteByte(' ')
			continue
		}
		logical.WriteString(line)

		fields := strings.Fields(logical.String())
		logical.Reset()
		if len(fields) == 0 {
			continue
		}
		if err := bp.parseLine(fields); err != nil {
			return nil, fmt.Errorf("simbus: line %d: %w", logicalStart, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return bp, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func (bp *Backplane) parseLine(fields []string) error {
	switch strings.ToLower(fields[0]) {
	case "cpu":
		return bp.parseCPU(fields[1:])
	case "bank":
		return bp.parseBank(fields[1:])
	case "tile":
		return bp.parseTile(fields[1:])
	default:
		return fmt.Errorf("unknown card type %q", fields[0])
	}
}

func splitKV(tok string) (string, string, bool) {
	i := strings.IndexByte(tok, '=')
	if i < 0 {
		return tok, "", false
	}
	return tok[:i], tok[i+1:], true
}

func parseNum(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 32)
	}
	return strconv.ParseUint(s, 10, 32)
}

func (bp *Backplane) parseCPU(fields []string) error {
	var cpu descriptor.CPU
	winIdx, routeIdx := 0, 0
	for _, tok := range fields {
		key, val, ok := splitKV(tok)
		if !ok {
			continue
		}
		switch key {
		case "dbw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			cpu.DataBusWidth = uint8(n)
		case "abw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			cpu.AddrBusWidth = uint8(n)
		case "platform":
			cpu.PlatformID = val
		case "manufacturer":
			cpu.Manufacturer = val
		case "cputype":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			cpu.CPUType = uint8(n)
		case "intack":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			cpu.IntAckMode = uint8(n)
		case "win":
			if winIdx >= descriptor.MaxWindows {
				return fmt.Errorf("too many win= entries, max %d", descriptor.MaxWindows)
			}
			w, err := parseWindow(val)
			if err != nil {
				return err
			}
			cpu.Windows[winIdx] = w
			winIdx++
		case "irq":
			if routeIdx >= descriptor.MaxRoutes {
				return fmt.Errorf("too many irq= entries, max %d", descriptor.MaxRoutes)
			}
			r, err := parseRoute(val)
			if err != nil {
				return err
			}
			cpu.Routes[routeIdx] = r
			routeIdx++
		}
	}
	bp.cpu = cpu
	bp.haveCPU = true
	return nil
}

func parseWindow(val string) (descriptor.WindowEntry, error) {
	var w descriptor.WindowEntry
	for _, sub := range strings.Split(val, ",") {
		if sub == "req" {
			w.Flags |= descriptor.FlagRequired
			continue
		}
		key, v, ok := splitKV(sub)
		if !ok {
			continue
		}
		n, err := parseNum(v)
		if err != nil && key != "op" {
			return w, err
		}
		switch key {
		case "func":
			w.Function = uint8(n)
		case "inst":
			w.Instance = uint8(n)
		case "base":
			w.IOWin = uint32(n)
		case "mask":
			w.Mask = uint32(n)
		case "op":
			switch strings.ToUpper(v) {
			case "READ":
				w.OpSel = descriptor.OpRead
			case "WRITE":
				w.OpSel = descriptor.OpWrite
			default:
				w.OpSel = descriptor.OpAny
			}
		}
	}
	return w, nil
}

func parseRoute(val string) (descriptor.RouteEntry, error) {
	var r descriptor.RouteEntry
	for _, sub := range strings.Split(val, ",") {
		key, v, ok := splitKV(sub)
		if !ok {
			continue
		}
		switch key {
		case "func":
			n, err := parseNum(v)
			if err != nil {
				return r, err
			}
			r.Function = uint8(n)
		case "inst":
			n, err := parseNum(v)
			if err != nil {
				return r, err
			}
			r.Instance = uint8(n)
		case "chan":
			n, err := parseNum(v)
			if err != nil {
				return r, err
			}
			r.Channel = uint8(n)
		case "dest":
			n, err := parseNum(v)
			if err != nil {
				return r, err
			}
			r.DestPin = uint8(n)
		case "mode":
			if v == "level" {
				r.Mode = 1
			}
		case "stretch":
			n, err := parseNum(v)
			if err != nil {
				return r, err
			}
			r.StretchUS = uint8(n)
		}
	}
	return r, nil
}

func (bp *Backplane) parseBank(fields []string) error {
	var bank descriptor.Bank
	for _, tok := range fields {
		key, val, ok := splitKV(tok)
		if !ok {
			continue
		}
		switch key {
		case "vendor":
			bank.VendorID = val
		case "board":
			bank.BoardID = val
		case "rev":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			bank.Revision = uint8(n)
		case "ram_aw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			bank.RAMAddrWidth = uint8(n)
		case "rom_aw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			bank.ROMAddrWidth = uint8(n)
		case "dbw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			bank.DataBusWidth = uint8(n)
		}
	}
	bp.bank = bank
	bp.haveBank = true
	return nil
}

func (bp *Backplane) parseTile(fields []string) error {
	var slot uint8
	haveSlot := false
	var inst descriptor.Instance
	for _, tok := range fields {
		key, val, ok := splitKV(tok)
		if !ok {
			continue
		}
		switch key {
		case "slot":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			slot = uint8(n)
			haveSlot = true
		case "func":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.Function = uint8(n)
		case "inst":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.Instance = uint8(n)
		case "dbw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.DataBusWidth = uint8(n)
		case "abw":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.AddrBusWidth = uint8(n)
		case "intack":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.IntAckMode = uint8(n)
		case "intchan":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.IntChannel = uint8(n)
		case "hwrev":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.HWRevision = uint8(n)
		case "fwrev":
			n, err := parseNum(val)
			if err != nil {
				return err
			}
			inst.FWRevision = uint8(n)
		case "name":
			inst.Name = val
		}
	}
	if !haveSlot {
		return fmt.Errorf("tile line missing slot=")
	}
	if int(slot) >= descriptor.MaxTiles {
		return fmt.Errorf("tile slot %d out of range [0,%d)", slot, descriptor.MaxTiles)
	}

	p := bp.tiles[slot]
	for i := range p.Instances {
		if p.Instances[i].Empty() {
			p.Instances[i] = inst
			break
		}
	}
	bp.tiles[slot] = p
	bp.present[slot] = true
	return nil
}
