// This file is part of Tilt.
//
// Tilt is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilt is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilt.  If not, see <https://www.gnu.org/licenses/>.

// Package mcu implements the port bridge of a protection microcontroller of
// the kind Kaneko fitted to its late-80s arcade boards. The MCU talks to
// the rest of the board through four 8-bit ports: a control port whose bit
// transitions drive the mailbox handshake; a data port; an input port
// multiplexing the player controls; and a status port multiplexing the DIP
// switch nibbles alongside the mailbox status bits.
//
// The MCU program itself runs behind the core.Core interface. This package
// only provides the port plumbing between that program and the board.
package mcu

import (
	"github.com/shiyutian/tilt/hardware/edge"
	"github.com/shiyutian/tilt/hardware/input"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/latch"
)

// Ports is the four-port bridge between an MCU program and the board.
//
// Command is the mailbox the host CPU sends commands through. It is
// configured for separate acknowledgement: the MCU reads the command
// through P1 and acknowledges it later through a P0 bit, so a plain
// read-acknowledges latch would drop the pending flag too early. A pending
// command asserts the MCU's IRQ line.
//
// Reply is the mailbox the MCU answers through. The host CPU reads it
// directly.
type Ports struct {
	label string

	Command *latch.Latch
	Reply   *latch.Latch

	// interrupt inputs of the core running the MCU program
	lines *irq.Lines

	// RESET line of the core controlled through port 3
	slaveReset *irq.Lines

	// inputs multiplexed through port 2
	in0 *input.Port
	in1 *input.Port
	in2 *input.Port

	// DIP banks multiplexed a nibble at a time through port 3
	dsw1 *input.DIPBank
	dsw2 *input.DIPBank

	p0 edge.Register
	p1 uint8
	p2 uint8
	p3 uint8
}

// NewPorts is the preferred method of initialisation for the Ports type.
// The lines argument is the interrupt inputs of the core running the MCU
// program; slaveReset is the Lines instance of the core whose RESET line
// the MCU drives.
func NewPorts(label string, lines *irq.Lines, slaveReset *irq.Lines,
	in0 *input.Port, in1 *input.Port, in2 *input.Port,
	dsw1 *input.DIPBank, dsw2 *input.DIPBank) *Ports {
	p := &Ports{
		label:      label,
		lines:      lines,
		slaveReset: slaveReset,
		in0:        in0,
		in1:        in1,
		in2:        in2,
		dsw1:       dsw1,
		dsw2:       dsw2,
		p0:         edge.NewRegister(0x00),
	}

	p.Command = latch.NewLatch(label + " command").SeparateAck().OnPending(p.commandPending)
	p.Reply = latch.NewLatch(label + " reply")

	return p
}

// Label returns the name given to the bridge on creation.
func (p *Ports) Label() string {
	return p.label
}

func (p *Ports) commandPending(pending bool) {
	if pending {
		p.lines.Set(irq.IRQ, irq.Assert)
	} else {
		p.lines.Set(irq.IRQ, irq.Clear)
	}
}

// P0Read returns the control port. Nothing on the board drives it so it
// reads as zero.
func (p *Ports) P0Read() uint8 {
	return 0
}

// P0Write is the control port. A rising edge of bit 1 forwards the P1
// value to the reply mailbox. Bit 0 low acknowledges the pending command.
func (p *Ports) P0Write(data uint8) {
	p.p0.Tick(data)

	if p.p0.Bit(1).Rising() {
		p.Reply.Write(p.p1)
	}

	if data&0x01 == 0x00 {
		p.Command.Acknowledge()
	}
}

// P1Read returns the pending command while P0 bit 0 is low. With the bit
// high the port is not driven; the original board reads zero.
func (p *Ports) P1Read() uint8 {
	if p.p0.Value()&0x01 == 0x00 {
		return p.Command.Read()
	}
	return 0
}

// P1Write latches the value the next P0 bit 1 rising edge will forward to
// the reply mailbox.
func (p *Ports) P1Write(data uint8) {
	p.p1 = data
}

// P2Read multiplexes the three input ports by P0 bits 2-3. The unused
// select value reads 0xff.
func (p *Ports) P2Read() uint8 {
	switch (p.p0.Value() >> 2) & 0x03 {
	case 0:
		return p.in1.Value()
	case 1:
		return p.in2.Value()
	case 2:
		return p.in0.Value()
	}
	return 0xff
}

// P2Write stores the port value. Nothing on the board reads it back.
func (p *Ports) P2Write(data uint8) {
	p.p2 = data
}

// P3Read multiplexes the DIP switch banks into the top nibble, one bit of
// each nibble of each bank at a time, selected by P0 bits 5-6. The bottom
// nibble carries the mailbox status: bit 2 clear while a command is
// pending, bit 3 set while a reply is pending.
func (p *Ports) P3Read() uint8 {
	sel := (p.p0.Value() >> 5) & 0x03

	// DIP switches are active low: an ON switch pulls its line to ground
	dsw1 := ^p.dsw1.Value()
	dsw2 := ^p.dsw2.Value()

	dsw := (dsw2>>sel&0x10)>>1 | (dsw2>>sel&0x01)<<2 | (dsw1>>sel&0x10)>>3 | (dsw1 >> sel & 0x01)

	var status uint8
	if !p.Command.Pending() {
		status |= 0x04
	}
	if p.Reply.Pending() {
		status |= 0x08
	}

	return dsw<<4 | status
}

// P3Write drives the slave core's RESET line from bit 1: the line is
// asserted while the bit is low.
func (p *Ports) P3Write(data uint8) {
	p.p3 = data
	if data&0x02 == 0x02 {
		p.slaveReset.Set(irq.Reset, irq.Clear)
	} else {
		p.slaveReset.Set(irq.Reset, irq.Assert)
	}
}

// Reset returns the bridge to its power-on state.
func (p *Ports) Reset() {
	p.p0 = edge.NewRegister(0x00)
	p.p1 = 0
	p.p2 = 0
	p.p3 = 0
	p.Command.Reset()
	p.Reply.Reset()
}

// Snapshot creates a copy of the Ports instance.
func (p *Ports) Snapshot() *Ports {
	cp := *p
	cp.p0 = p.p0.Snapshot()
	cp.Command = p.Command.Snapshot()
	cp.Reply = p.Reply.Snapshot()
	return &cp
}

// Plumb a previously snapshotted Ports instance back into the emulation.
func (p *Ports) Plumb(s *Ports, lines *irq.Lines, slaveReset *irq.Lines) {
	p.lines = lines
	p.slaveReset = slaveReset
	p.p0 = s.p0
	p.p1 = s.p1
	p.p2 = s.p2
	p.p3 = s.p3
	p.Command.Plumb(s.Command, p.commandPending)
	p.Reply.Plumb(s.Reply, nil)
}
