// debug_monitor.go - Interactive machine monitor (raw terminal, single-stepping)

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// stateNames maps sequencer states to display labels.
var stateNames = map[int]string{
	EXP_ST_IDLE:  "IDLE",
	EXP_ST_ISSUE: "ISSUE",
	EXP_ST_WAIT:  "WAIT",
	EXP_ST_DONE:  "DONE",
}

// MachineMonitor is an interactive debugger for the exponential machine:
// start evaluations, single-step the clock, and inspect sequencer registers
// and unit handshake state. Only instantiated in main.go for interactive
// use - never in tests.
type MachineMonitor struct {
	machine *Machine
	termIn  *os.File
}

// NewMachineMonitor attaches a monitor to a machine.
func NewMachineMonitor(machine *Machine) *MachineMonitor {
	return &MachineMonitor{machine: machine, termIn: os.Stdin}
}

// Run puts the terminal in raw mode and services commands until quit or EOF.
func (mon *MachineMonitor) Run() error {
	fd := int(mon.termIn.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("monitor: raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{mon.termIn, os.Stdout}, "exp> ")

	fmt.Fprintln(t, "ExpEngine monitor. Commands: x <val> | b <hex> | s [n] | r | reset | q")
	for {
		line, err := t.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if done := mon.dispatch(t, strings.Fields(line)); done {
			return nil
		}
	}
}

func (mon *MachineMonitor) dispatch(w io.Writer, fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	m := mon.machine

	switch fields[0] {
	case "q", "quit":
		return true

	case "x":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: x <decimal value>")
			return false
		}
		val, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			fmt.Fprintf(w, "bad value: %v\n", err)
			return false
		}
		mon.evaluate(w, math.Float32bits(float32(val)))

	case "b":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: b <hex encoding>")
			return false
		}
		bits, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
		if err != nil {
			fmt.Fprintf(w, "bad encoding: %v\n", err)
			return false
		}
		mon.evaluate(w, uint32(bits))

	case "s", "step":
		n := 1
		if len(fields) == 2 {
			if parsed, err := strconv.Atoi(fields[1]); err == nil && parsed > 0 {
				n = parsed
			}
		}
		for i := 0; i < n; i++ {
			m.Tick()
		}
		mon.dumpRegisters(w)

	case "r", "regs":
		mon.dumpRegisters(w)

	case "reset":
		m.Reset()
		fmt.Fprintln(w, "machine reset")

	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}
	return false
}

// evaluate starts a run via the MMIO window and free-runs to completion.
func (mon *MachineMonitor) evaluate(w io.Writer, xBits uint32) {
	m := mon.machine
	if m.Engine.Busy() {
		fmt.Fprintln(w, "engine busy; step it to completion first")
		return
	}
	m.Bus.Write32(EXP_OPERAND, xBits)
	m.Bus.Write32(EXP_CTRL, EXP_CTRL_START)
	cycles := m.RunUntilReady()
	result := m.Bus.Read32(EXP_RESULT)
	fmt.Fprintf(w, "exp(%v) = %v  [%08X]  (%d cycles)\n",
		math.Float32frombits(xBits), math.Float32frombits(result), result, cycles)
}

func (mon *MachineMonitor) dumpRegisters(w io.Writer) {
	e := mon.machine.Engine
	fmt.Fprintf(w, "state=%s pc=%d cycle=%d\n", stateNames[e.state], e.pc, e.cycles)
	fmt.Fprintf(w, "  x=%08X t=%08X f=%08X u=%08X h=%08X\n", e.x, e.t, e.f, e.u, e.h)
	fmt.Fprintf(w, "  n=%d negN=%08X scale=%08X result=%08X valid=%v\n",
		e.n, e.negN, e.scale, e.result, e.resultValid)
	fmt.Fprintf(w, "  add: busy=%v done=%v result=%08X\n",
		mon.machine.Add.Busy(), mon.machine.Add.Done(), mon.machine.Add.Result())
	fmt.Fprintf(w, "  mul: busy=%v done=%v result=%08X\n",
		mon.machine.Mul.Busy(), mon.machine.Mul.Done(), mon.machine.Mul.Result())
}
