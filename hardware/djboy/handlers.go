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

package djboy

import (
	"github.com/shiyutian/tilt/hardware/irq"
)

func (b *Board) masterBankW(_ uint16, data uint8) error {
	b.masterBank.Select(data)
	return nil
}

// the video register carries the slave bank selection in its bottom nibble,
// alongside the scroll msb and flip bits. select values 4 to 7 address the
// unpopulated half of the first ROM and leave the bank alone.
func (b *Board) slaveBankW(_ uint16, data uint8) error {
	b.videoReg = data

	if data&0x0c != 0x04 {
		b.slaveBank.Select(data & 0x0f)
	}

	return nil
}

func (b *Board) soundBankW(_ uint16, data uint8) error {
	b.soundBank.Select(data)
	return nil
}

func (b *Board) soundLatchW(_ uint16, data uint8) error {
	b.soundLatch.Write(data)
	return nil
}

func (b *Board) soundLatchR(_ uint16) (uint8, error) {
	return b.soundLatch.Read(), nil
}

// the slave's mailbox port: reads take the MCU's reply, writes deliver a
// command
func (b *Board) beastReplyR(_ uint16) (uint8, error) {
	return b.BeastPorts.Reply.Read(), nil
}

func (b *Board) beastCommandW(_ uint16, data uint8) error {
	b.BeastPorts.Command.Write(data)
	return nil
}

// mailbox status as the slave sees it: bit 2 clear while a reply is
// waiting, bit 3 set while the MCU still has the command
func (b *Board) beastStatusR(_ uint16) (uint8, error) {
	var v uint8
	if !b.BeastPorts.Reply.Pending() {
		v |= 0x04
	}
	if b.BeastPorts.Command.Pending() {
		v |= 0x08
	}
	return v, nil
}

func (b *Board) masterNMIW(_ uint16, _ uint8) error {
	b.Master.Lines().Set(irq.NMI, irq.Pulse)
	return nil
}

func (b *Board) scrollXW(_ uint16, data uint8) error {
	b.scrollX = data
	return nil
}

func (b *Board) scrollYW(_ uint16, data uint8) error {
	b.scrollY = data
	return nil
}

// coin counters advance on the rising edge of their register bit
func (b *Board) coinCountW(_ uint16, data uint8) error {
	b.coinReg.Tick(data)
	if b.coinReg.Bit(0).Rising() {
		b.CoinCounters[0]++
	}
	if b.coinReg.Bit(1).Rising() {
		b.CoinCounters[1]++
	}
	return nil
}

func (b *Board) beastP0R(_ uint16) (uint8, error) {
	return b.BeastPorts.P0Read(), nil
}

func (b *Board) beastP0W(_ uint16, data uint8) error {
	b.BeastPorts.P0Write(data)
	return nil
}

func (b *Board) beastP1R(_ uint16) (uint8, error) {
	return b.BeastPorts.P1Read(), nil
}

func (b *Board) beastP1W(_ uint16, data uint8) error {
	b.BeastPorts.P1Write(data)
	return nil
}

func (b *Board) beastP2R(_ uint16) (uint8, error) {
	return b.BeastPorts.P2Read(), nil
}

func (b *Board) beastP2W(_ uint16, data uint8) error {
	b.BeastPorts.P2Write(data)
	return nil
}

func (b *Board) beastP3R(_ uint16) (uint8, error) {
	return b.BeastPorts.P3Read(), nil
}

func (b *Board) beastP3W(_ uint16, data uint8) error {
	b.BeastPorts.P3Write(data)
	return nil
}
