// script_host.go - Lua scripting host for driving batches of evaluations

package main

import (
	"math"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHost exposes the machine to Lua scripts. Registered globals:
//
//	exp(x)       evaluate exp(x), returns the result as a number
//	expbits(b)   evaluate from a raw FP32 encoding, returns the result encoding
//	cycles()     clock cycles elapsed since reset
//	reset()      hard-reset the machine
//
// Scripts drive evaluations strictly one at a time through the MMIO window,
// matching the engine's no-overlap contract.
type ScriptHost struct {
	machine *Machine
	state   *lua.LState
}

// NewScriptHost creates a Lua state bound to the given machine.
func NewScriptHost(machine *Machine) *ScriptHost {
	h := &ScriptHost{
		machine: machine,
		state:   lua.NewState(),
	}
	h.state.SetGlobal("exp", h.state.NewFunction(h.luaExp))
	h.state.SetGlobal("expbits", h.state.NewFunction(h.luaExpBits))
	h.state.SetGlobal("cycles", h.state.NewFunction(h.luaCycles))
	h.state.SetGlobal("reset", h.state.NewFunction(h.luaReset))
	return h
}

// RunFile executes a script file.
func (h *ScriptHost) RunFile(path string) error {
	return h.state.DoFile(path)
}

// RunString executes Lua source directly.
func (h *ScriptHost) RunString(src string) error {
	return h.state.DoString(src)
}

// Close releases the Lua state.
func (h *ScriptHost) Close() {
	h.state.Close()
}

func (h *ScriptHost) evaluate(xBits uint32) uint32 {
	h.machine.Bus.Write32(EXP_OPERAND, xBits)
	h.machine.Bus.Write32(EXP_CTRL, EXP_CTRL_START)
	h.machine.RunUntilReady()
	return h.machine.Bus.Read32(EXP_RESULT)
}

func (h *ScriptHost) luaExp(L *lua.LState) int {
	x := float32(L.CheckNumber(1))
	result := h.evaluate(math.Float32bits(x))
	L.Push(lua.LNumber(float64(math.Float32frombits(result))))
	return 1
}

func (h *ScriptHost) luaExpBits(L *lua.LState) int {
	bits := uint32(uint64(L.CheckNumber(1)))
	L.Push(lua.LNumber(h.evaluate(bits)))
	return 1
}

func (h *ScriptHost) luaCycles(L *lua.LState) int {
	L.Push(lua.LNumber(h.machine.Engine.Cycles()))
	return 1
}

func (h *ScriptHost) luaReset(L *lua.LState) int {
	h.machine.Reset()
	return 0
}
