/*
 * uBITz enumerator - Pipeline orchestrator.
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

// Package orchestrator drives the boot-time enumeration pipeline:
// reset assert, descriptor ingestion, validation, mapping, CPLD
// programming, snapshot publication, reset release. It owns the
// configuration bus, CPLD programmer, and reset line exclusively for
// the duration of one run.
package orchestrator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ubitz/enumerator/bus"
	"github.com/ubitz/enumerator/descriptor"
	"github.com/ubitz/enumerator/mapper"
	"github.com/ubitz/enumerator/snapshot"
	"github.com/ubitz/enumerator/validate"
)

// stepError carries the FailReason a pipeline step has already decided
// on, so callers further up Run don't have to re-derive it from a bare
// error value.
type stepError struct {
	reason snapshot.FailReason
	err    error
}

func (e *stepError) Error() string {
	return fmt.Sprintf("orchestrator: %s: %v", e.reason, e.err)
}

func (e *stepError) Unwrap() error { return e.err }

func fail(reason snapshot.FailReason, err error) error {
	return &stepError{reason: reason, err: err}
}

// Platform holds the three external collaborators the orchestrator
// drives: the configuration bus, the CPLD programmer, and the reset
// line.
type Platform struct {
	Cfg    bus.ConfigBus
	Cpld   bus.CpldProgrammer
	Reset  bus.ResetLine
	Store  *snapshot.Store
	Logger *slog.Logger
}

// Run executes the pipeline exactly once, aborting to the snapshot
// store's failure state at the first error. It always releases the
// reset line before returning once reset has been asserted.
func (p *Platform) Run() error {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := p.Reset.Init(); err != nil {
		p.setFailure(log, snapshot.UnknownFail, "reset init failed", err)
		return fail(snapshot.UnknownFail, err)
	}
	p.Reset.Assert()
	p.Store.Reset()

	if err := p.Cfg.Init(); err != nil {
		return p.abort(log, snapshot.I2cError, "config bus init failed", err)
	}
	if err := p.Cpld.Init(); err != nil {
		return p.abort(log, snapshot.UnknownFail, "cpld init failed", err)
	}

	cpu, err := p.readCPU()
	if err != nil {
		reason := snapshot.I2cError
		if errors.Is(err, descriptor.ErrDescBad) {
			reason = snapshot.CpuDescBad
		}
		return p.abort(log, reason, "cpu descriptor read failed", err)
	}
	if !validate.CPUOk(cpu) {
		return p.abort(log, snapshot.CpuDescBad, "cpu descriptor failed structural checks", nil)
	}

	bank, err := p.readBank()
	if err != nil {
		reason := snapshot.I2cError
		if errors.Is(err, descriptor.ErrDescBad) {
			reason = snapshot.BankDescBad
		}
		return p.abort(log, reason, "bank descriptor read failed", err)
	}
	if !validate.BankOkVsCPU(bank, cpu) {
		return p.abort(log, snapshot.BankWidthMismatch, "bank/cpu data bus width mismatch", nil)
	}

	tiles, err := p.readTiles(cpu)
	if err != nil {
		var se *stepError
		reason := snapshot.I2cError
		if errors.As(err, &se) {
			reason = se.reason
		}
		return p.abort(log, reason, "tile read/width check failed", err)
	}

	if err := mapper.WindowsUnique(cpu); err != nil {
		return p.abort(log, snapshot.WindowCollision, "window collision", err)
	}
	windows, err := mapper.BuildWindowBindings(cpu, tiles)
	if err != nil {
		reason := snapshot.RequiredWindowMissing
		if errors.Is(err, mapper.ErrWindowCollision) {
			reason = snapshot.WindowCollision
		}
		return p.abort(log, reason, "window mapping failed", err)
	}

	if err := mapper.RoutesUnique(cpu); err != nil {
		return p.abort(log, snapshot.RouteDuplicate, "route duplicate", err)
	}
	irqs, err := mapper.BuildIRQBindings(cpu, tiles)
	if err != nil {
		reason := snapshot.RouteMissing
		if errors.Is(err, mapper.ErrRouteDuplicate) {
			reason = snapshot.RouteDuplicate
		}
		return p.abort(log, reason, "irq mapping failed", err)
	}

	bus.ProgramDecoder(p.Cpld, windows)
	bus.ProgramIRQRouter(p.Cpld, irqs)

	p.Store.Publish(cpu, bank, tiles, windows, irqs)
	log.Info("enumeration succeeded", "windows", len(windows), "irqs", len(irqs), "tiles", len(tiles))

	p.Reset.Release()
	return nil
}

func (p *Platform) readCPU() (descriptor.CPU, error) {
	buf := make([]byte, descriptor.CPULen)
	if err := p.Cfg.Read(bus.CPUAddr, buf); err != nil {
		return descriptor.CPU{}, err
	}
	return descriptor.DecodeCPU(buf)
}

func (p *Platform) readBank() (descriptor.Bank, error) {
	buf := make([]byte, descriptor.BankLen)
	if err := p.Cfg.Read(bus.BankAddr, buf); err != nil {
		return descriptor.Bank{}, err
	}
	return descriptor.DecodeBank(buf)
}

// readTiles probes every tile slot address, accepting bus.ErrNoDevice
// as an absent card, and pre-checks every accepted instance's data bus
// width against the CPU's before the mapping stage ever runs.
func (p *Platform) readTiles(cpu descriptor.CPU) ([]mapper.Tile, error) {
	var tiles []mapper.Tile
	for slot := uint8(0); slot < descriptor.MaxTiles; slot++ {
		buf := make([]byte, descriptor.PeripheralLen)
		err := p.Cfg.Read(bus.TileBaseAddr+slot, buf)
		if errors.Is(err, bus.ErrNoDevice) {
			continue
		}
		if err != nil {
			return nil, fail(snapshot.I2cError, err)
		}
		periph, err := descriptor.DecodePeripheral(buf)
		if err != nil {
			return nil, fail(snapshot.BankDescBad, err)
		}
		for _, inst := range periph.Instances {
			if inst.Empty() {
				continue
			}
			if !validate.InstanceWidthOK(inst, cpu) {
				return nil, fail(snapshot.DevWidthIncompat, fmt.Errorf("slot %d: %w", slot, errDevWidth))
			}
		}
		tiles = append(tiles, mapper.Tile{Slot: slot, Desc: periph})
	}
	return tiles, nil
}

var errDevWidth = errors.New("device data bus width exceeds cpu's")

func (p *Platform) abort(log *slog.Logger, reason snapshot.FailReason, msg string, err error) error {
	p.setFailure(log, reason, msg, err)
	p.Reset.Release()
	return fail(reason, err)
}

func (p *Platform) setFailure(log *slog.Logger, reason snapshot.FailReason, msg string, err error) {
	p.Store.SetFailure(reason)
	if err != nil {
		log.Error(msg, "reason", reason.String(), "err", err)
	} else {
		log.Error(msg, "reason", reason.String())
	}
}
