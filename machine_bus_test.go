// machine_bus_test.go - Bus memory and I/O mapping tests

package main

import "testing"

func TestMachineBus_MemoryRoundTrip(t *testing.T) {
	bus := NewMachineBus()
	bus.Write32(0x1000, 0xDEADBEEF)
	if got := bus.Read32(0x1000); got != 0xDEADBEEF {
		t.Errorf("Read32 = %08X, want DEADBEEF", got)
	}
	// Little-endian layout in backing memory.
	bus.Write32(0x2000, 0x11223344)
	if bus.memory[0x2000] != 0x44 || bus.memory[0x2003] != 0x11 {
		t.Error("backing memory not little-endian")
	}
}

func TestMachineBus_OutOfRange(t *testing.T) {
	bus := NewMachineBus()
	// Out-of-range accesses are silently dropped. The last four addresses
	// would wrap addr+4 back to 0..3, so they must be rejected too, not
	// slipped past the bounds check.
	addrs := []uint32{
		uint32(DEFAULT_MEMORY_SIZE) - 3, // straddles the end of memory
		uint32(DEFAULT_MEMORY_SIZE),
		0xFFFFFFF0,
		0xFFFFFFFC,
		0xFFFFFFFD,
		0xFFFFFFFE,
		0xFFFFFFFF,
	}
	for _, addr := range addrs {
		bus.Write32(addr, 0x12345678)
		if got := bus.Read32(addr); got != 0 {
			t.Errorf("out-of-range read at %08X = %08X, want 0", addr, got)
		}
	}
	// In-range accesses right at the boundary still work.
	last := uint32(DEFAULT_MEMORY_SIZE) - 4
	bus.Write32(last, 0xCAFEF00D)
	if got := bus.Read32(last); got != 0xCAFEF00D {
		t.Errorf("last-word access = %08X, want CAFEF00D", got)
	}
}

func TestMachineBus_IORouting(t *testing.T) {
	bus := NewMachineBus()
	var wrote uint32
	err := bus.MapIO(0xF0C00, 0xF0C0F,
		func(addr uint32) uint32 { return addr | 1 },
		func(addr uint32, value uint32) { wrote = value })
	if err != nil {
		t.Fatalf("MapIO: %v", err)
	}

	if got := bus.Read32(0xF0C04); got != 0xF0C05 {
		t.Errorf("mapped read = %08X, want F0C05", got)
	}
	bus.Write32(0xF0C08, 42)
	if wrote != 42 {
		t.Errorf("mapped write saw %d, want 42", wrote)
	}
	// Same page, outside the window: plain memory.
	bus.Write32(0xF0C40, 7)
	if got := bus.Read32(0xF0C40); got != 7 {
		t.Errorf("unmapped same-page access = %d, want 7", got)
	}
}

func TestMachineBus_MapIOValidation(t *testing.T) {
	bus := NewMachineBus()
	if err := bus.MapIO(0xF0CFF, 0xF0D01, nil, nil); err == nil {
		t.Error("page-straddling region accepted")
	}
	if err := bus.MapIO(0xF0C10, 0xF0C00, nil, nil); err == nil {
		t.Error("inverted region accepted")
	}
}

func TestMachineBus_Reset(t *testing.T) {
	bus := NewMachineBus()
	bus.Write32(0x3000, 0xAABBCCDD)
	calls := 0
	if err := bus.MapIO(0xF0C00, 0xF0C0F, func(uint32) uint32 { calls++; return 0 }, nil); err != nil {
		t.Fatalf("MapIO: %v", err)
	}
	bus.Reset()
	if got := bus.Read32(0x3000); got != 0 {
		t.Errorf("memory survived reset: %08X", got)
	}
	// Mappings survive reset.
	bus.Read32(0xF0C00)
	if calls != 1 {
		t.Error("I/O mapping lost on reset")
	}
}
