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

package mcu_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/input"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/peripherals/mcu"
	"github.com/shiyutian/tilt/test"
)

func newTestPorts() (*mcu.Ports, *irq.Lines, *irq.Lines) {
	lines := irq.NewLines("mcu")
	slaveReset := irq.NewLines("slave")

	in0 := input.NewPort("in0", 0xff, nil)
	in1 := input.NewPort("in1", 0xfe, nil)
	in2 := input.NewPort("in2", 0xfd, nil)

	dsw1 := input.NewDIPBank("dsw1", []input.Setting{
		{Label: "Test Mode", Mask: 0x01, Choices: map[string]uint8{"Off": 0x01, "On": 0x00}, Default: 0x01},
	})
	dsw2 := input.NewDIPBank("dsw2", []input.Setting{
		{Label: "Lives", Mask: 0x30, Choices: map[string]uint8{"3": 0x30, "5": 0x20}, Default: 0x30},
	})

	return mcu.NewPorts("beast", lines, slaveReset, in0, in1, in2, dsw1, dsw2), lines, slaveReset
}

func TestCommandHandshake(t *testing.T) {
	p, lines, _ := newTestPorts()

	// host CPU sends a command. the pending command interrupts the MCU
	p.Command.Write(0xa9)
	lines.Latch()
	test.Equate(t, lines.IsAsserted(irq.IRQ), true)

	// the MCU reads the command with P0 bit 0 low. the command stays
	// pending: acknowledgement is separate
	p.P0Write(0x01)
	test.Equate(t, p.P1Read(), 0)

	p.P0Write(0x00)
	test.Equate(t, p.P1Read(), 0xa9)
	test.Equate(t, p.Command.Pending(), false)

	lines.Latch()
	test.Equate(t, lines.IsAsserted(irq.IRQ), false)
}

func TestReplyForwarding(t *testing.T) {
	p, _, _ := newTestPorts()

	// the MCU stages a value on P1 and forwards it to the reply mailbox
	// with a rising edge of P0 bit 1
	p.P1Write(0x42)
	test.Equate(t, p.Reply.Pending(), false)

	p.P0Write(0x02)
	test.Equate(t, p.Reply.Pending(), true)
	test.Equate(t, p.Reply.Read(), 0x42)

	// holding the bit high does not forward again
	p.P1Write(0x43)
	p.P0Write(0x02)
	test.Equate(t, p.Reply.Pending(), false)

	// a second rising edge does
	p.P0Write(0x00)
	p.P0Write(0x02)
	test.Equate(t, p.Reply.Read(), 0x43)
}

func TestInputMux(t *testing.T) {
	p, _, _ := newTestPorts()

	// P0 bits 2-3 select the input port. the select values are not in
	// port order
	p.P0Write(0x00 << 2)
	test.Equate(t, p.P2Read(), 0xfe)

	p.P0Write(0x01 << 2)
	test.Equate(t, p.P2Read(), 0xfd)

	p.P0Write(0x02 << 2)
	test.Equate(t, p.P2Read(), 0xff)

	// the fourth select value is unused and the port floats high
	p.P0Write(0x03 << 2)
	test.Equate(t, p.P2Read(), 0xff)
}

func TestStatusNibble(t *testing.T) {
	p, _, _ := newTestPorts()

	// no command, no reply: bit 2 set, bit 3 clear
	test.Equate(t, p.P3Read()&0x0f, 0x04)

	p.Command.Write(0x01)
	test.Equate(t, p.P3Read()&0x0f, 0x00)

	// forwarding the reply with P0 bit 0 low also acknowledges the command
	p.P1Write(0x99)
	p.P0Write(0x02)
	test.Equate(t, p.P3Read()&0x0f, 0x0c)
}

func TestDIPNibbleMux(t *testing.T) {
	p, _, _ := newTestPorts()

	// dsw1 reads 0x01 (all other bits off), dsw2 reads 0x30. the banks
	// are active low so the ON switches are the zero bits
	//
	// select 0 picks bit 4 and bit 0 of each bank:
	//   dsw2 inverted = 0xcf: bit4=0 bit0=1; dsw1 inverted = 0xfe: bit4=1 bit0=0
	p.P0Write(0x00 << 5)
	test.Equate(t, p.P3Read()>>4, 0x06)

	// select 1 picks bit 5 and bit 1:
	//   dsw2: bit5=0 bit1=1; dsw1: bit5=1 bit1=1
	p.P0Write(0x01 << 5)
	test.Equate(t, p.P3Read()>>4, 0x07)
}

func TestSlaveResetLine(t *testing.T) {
	p, _, slaveReset := newTestPorts()

	// bit 1 low holds the slave core in reset
	p.P3Write(0x00)
	slaveReset.Latch()
	test.Equate(t, slaveReset.IsAsserted(irq.Reset), true)

	p.P3Write(0x02)
	slaveReset.Latch()
	test.Equate(t, slaveReset.IsAsserted(irq.Reset), false)
}
