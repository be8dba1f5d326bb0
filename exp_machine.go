// exp_machine.go - Top-level assembly of bus, arithmetic units, engine and MMIO window

package main

// Machine wires the shared arithmetic units, the exponential sequencer and
// its MMIO register window onto one bus, clocked as a single synchronous
// domain.
type Machine struct {
	Bus    *MachineBus
	Add    *FPUnit
	Mul    *FPUnit
	Engine *ExpEngine
	MMIO   *ExpMMIO
}

// NewMachine builds a machine with the given unit latencies.
func NewMachine(addLatency, mulLatency int) (*Machine, error) {
	add := NewFPAddUnit(addLatency)
	mul := NewFPMulUnit(mulLatency)
	engine := NewExpEngine(add, mul)
	mmio := NewExpMMIO(engine)

	bus := NewMachineBus()
	if err := mmio.MapTo(bus); err != nil {
		return nil, err
	}

	return &Machine{
		Bus:    bus,
		Add:    add,
		Mul:    mul,
		Engine: engine,
		MMIO:   mmio,
	}, nil
}

// Tick advances the whole machine by one clock cycle. The MMIO wrapper
// clocks the engine, which in turn clocks both units.
func (m *Machine) Tick() {
	m.MMIO.Tick()
}

// RunUntilReady ticks until the MMIO ready bit is visible, returning the
// number of cycles consumed. A stalled unit would spin forever; liveness is
// the units' contract, so no timeout exists here.
func (m *Machine) RunUntilReady() uint64 {
	start := m.Engine.Cycles()
	for m.Bus.Read32(EXP_STATUS)&EXP_STATUS_READY == 0 {
		m.Tick()
	}
	return m.Engine.Cycles() - start
}
