// machine_bus.go - 32-bit memory bus with memory-mapped I/O for the exponential engine

package main

import (
	"encoding/binary"
	"fmt"
)

const (
	DEFAULT_MEMORY_SIZE = 1 * 1024 * 1024
	PAGE_SIZE           = 0x100
	PAGE_MASK           = 0xFFF00
)

// Bus32 is the interface hosts use to reach memory and memory-mapped
// devices. Implementations provide little-endian 32-bit access and a full
// reset of memory state.
type Bus32 interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
	Reset()
}

// IORegion is a memory-mapped I/O window. Accesses falling inside
// [start, end] are routed to the callbacks instead of plain memory.
type IORegion struct {
	start   uint32
	end     uint32
	onRead  func(addr uint32) uint32
	onWrite func(addr uint32, value uint32)
}

// MachineBus implements Bus32 over a contiguous memory block plus a
// page-keyed map of I/O regions. Page keys are addr & PAGE_MASK, so a
// region must not straddle a PAGE_SIZE boundary.
type MachineBus struct {
	memory  []byte
	mapping map[uint32][]IORegion
}

// NewMachineBus allocates the bus with DEFAULT_MEMORY_SIZE bytes of memory.
func NewMachineBus() *MachineBus {
	return &MachineBus{
		memory:  make([]byte, DEFAULT_MEMORY_SIZE),
		mapping: make(map[uint32][]IORegion),
	}
}

// MapIO registers an I/O region. Both addresses are inclusive.
func (bus *MachineBus) MapIO(start, end uint32, onRead func(uint32) uint32, onWrite func(uint32, uint32)) error {
	if end < start {
		return fmt.Errorf("bus: inverted I/O range %08X-%08X", start, end)
	}
	if start&PAGE_MASK != end&PAGE_MASK {
		return fmt.Errorf("bus: I/O range %08X-%08X straddles a page boundary", start, end)
	}
	key := start & PAGE_MASK
	bus.mapping[key] = append(bus.mapping[key], IORegion{
		start:   start,
		end:     end,
		onRead:  onRead,
		onWrite: onWrite,
	})
	return nil
}

func (bus *MachineBus) Read32(addr uint32) uint32 {
	if regions, ok := bus.mapping[addr&PAGE_MASK]; ok {
		for _, region := range regions {
			if addr >= region.start && addr <= region.end && region.onRead != nil {
				return region.onRead(addr)
			}
		}
	}
	// addr+4 would wrap for the top four addresses; compare subtractively.
	if addr > uint32(len(bus.memory))-4 {
		return 0
	}
	return binary.LittleEndian.Uint32(bus.memory[addr : addr+4])
}

func (bus *MachineBus) Write32(addr uint32, value uint32) {
	if regions, ok := bus.mapping[addr&PAGE_MASK]; ok {
		for _, region := range regions {
			if addr >= region.start && addr <= region.end && region.onWrite != nil {
				region.onWrite(addr, value)
				return
			}
		}
	}
	if addr > uint32(len(bus.memory))-4 {
		return
	}
	binary.LittleEndian.PutUint32(bus.memory[addr:addr+4], value)
}

// Reset clears all memory. I/O mappings survive a reset; mapped devices
// reset themselves (see component_reset.go).
func (bus *MachineBus) Reset() {
	for i := range bus.memory {
		bus.memory[i] = 0
	}
}
