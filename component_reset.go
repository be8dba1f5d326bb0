// component_reset.go - Hard reset ordering for all machine components

package main

// Resettable is implemented by every stateful component in the machine.
type Resettable interface {
	Reset()
}

// Reset performs a hard reset of the whole machine. Order matters: the
// sequencer is quiesced before its unit slots so no in-flight handshake
// survives, then the MMIO window and bus memory are cleared.
func (m *Machine) Reset() {
	components := []Resettable{
		m.Engine,
		m.Add,
		m.Mul,
		m.MMIO,
		m.Bus,
	}
	for _, c := range components {
		c.Reset()
	}
}
