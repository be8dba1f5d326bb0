// script_host_test.go - Lua scripting host tests

package main

import (
	"math"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func newTestScriptHost(t *testing.T) *ScriptHost {
	t.Helper()
	m, err := NewMachine(DEFAULT_FPADD_LATENCY, DEFAULT_FPMUL_LATENCY)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	h := NewScriptHost(m)
	t.Cleanup(h.Close)
	return h
}

func TestScriptHost_Exp(t *testing.T) {
	h := newTestScriptHost(t)
	if err := h.RunString(`r = exp(1.0)`); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	r, ok := h.state.GetGlobal("r").(lua.LNumber)
	if !ok {
		t.Fatal("r is not a number")
	}
	// The script result must match the engine's direct answer bit for bit.
	want := float64(math.Float32frombits(h.machine.Engine.Compute(math.Float32bits(float32(1.0)))))
	if float64(r) != want {
		t.Errorf("script exp(1.0) = %v, want %v", float64(r), want)
	}
}

func TestScriptHost_ExpBits(t *testing.T) {
	h := newTestScriptHost(t)
	if err := h.RunString(`r = expbits(0)`); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	r := h.state.GetGlobal("r").(lua.LNumber)
	if uint32(r) != FP32_ONE {
		t.Errorf("expbits(0) = %08X, want %08X", uint32(r), FP32_ONE)
	}
}

func TestScriptHost_CyclesAndReset(t *testing.T) {
	h := newTestScriptHost(t)
	script := `
		before = cycles()
		exp(2.0)
		after = cycles()
		reset()
		cleared = cycles()
	`
	if err := h.RunString(script); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	before := h.state.GetGlobal("before").(lua.LNumber)
	after := h.state.GetGlobal("after").(lua.LNumber)
	cleared := h.state.GetGlobal("cleared").(lua.LNumber)
	if after <= before {
		t.Error("cycles did not advance across an evaluation")
	}
	if cleared != 0 {
		t.Errorf("cycles after reset = %v, want 0", cleared)
	}
}

func TestScriptHost_BadScript(t *testing.T) {
	h := newTestScriptHost(t)
	if err := h.RunString(`exp(`); err == nil {
		t.Error("syntax error not reported")
	}
}
