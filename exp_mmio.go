// exp_mmio.go - Memory-mapped register front-end for the exponential engine

package main

// ExpMMIO exposes the exponential engine through the EXP_* register window.
// The engine's one-cycle completion pulse is widened here into a sticky
// ready bit, since a polled bus access cannot reliably observe a single
// cycle. Ready clears when the next start is accepted.
type ExpMMIO struct {
	engine *ExpEngine
	ready  bool
}

// NewExpMMIO wraps an engine for bus mounting.
func NewExpMMIO(engine *ExpEngine) *ExpMMIO {
	return &ExpMMIO{engine: engine}
}

// MapTo registers the EXP_* window on the given bus.
func (m *ExpMMIO) MapTo(bus *MachineBus) error {
	return bus.MapIO(EXP_BASE, EXP_END, m.busRead, m.busWrite)
}

// Tick advances the engine one cycle and latches the completion pulse.
func (m *ExpMMIO) Tick() {
	m.engine.Tick()
	if m.engine.ResultValid() {
		m.ready = true
	}
}

// Reset clears the sticky ready bit. The engine resets separately.
func (m *ExpMMIO) Reset() {
	m.ready = false
}

func (m *ExpMMIO) busRead(addr uint32) uint32 {
	switch addr {
	case EXP_STATUS:
		var status uint32
		if m.engine.Busy() {
			status |= EXP_STATUS_BUSY
		}
		if m.ready {
			status |= EXP_STATUS_READY
		}
		return status
	case EXP_RESULT:
		return m.engine.Result()
	}
	return 0
}

func (m *ExpMMIO) busWrite(addr uint32, value uint32) {
	// Writes while an evaluation is in flight are ignored, not queued.
	if m.engine.Busy() {
		return
	}
	switch addr {
	case EXP_OPERAND:
		m.engine.SetOperand(value)
	case EXP_CTRL:
		if value&EXP_CTRL_START != 0 {
			m.ready = false
			m.engine.Start()
		}
	}
}
