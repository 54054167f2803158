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
	"github.com/shiyutian/tilt/hardware/bank"
	"github.com/shiyutian/tilt/hardware/edge"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/latch"
	"github.com/shiyutian/tilt/hardware/memory"
	"github.com/shiyutian/tilt/hardware/peripherals/mcu"
	"github.com/shiyutian/tilt/hardware/peripherals/oki"
)

// State is a snapshot of everything on the board that the CPUs can observe:
// bank selections, mailbox contents and pending flags, bridge registers,
// interrupt line states and RAM.
type State struct {
	masterBank *bank.Bank
	slaveBank  *bank.Bank
	soundBank  *bank.Bank

	soundLatch *latch.Latch
	beast      *mcu.Ports

	okiL *oki.Player
	okiR *oki.Player

	masterLines *irq.Lines
	slaveLines  *irq.Lines
	soundLines  *irq.Lines
	beastLines  *irq.Lines

	videoReg uint8
	scrollX  uint8
	scrollY  uint8

	coinReg      edge.Register
	coinCounters [2]int

	scanLine      int
	scanRemaining int

	rams []*memory.RAM
}

// Snapshot creates a copy of the board state.
func (b *Board) Snapshot() *State {
	s := &State{
		masterBank:    b.masterBank.Snapshot(),
		slaveBank:     b.slaveBank.Snapshot(),
		soundBank:     b.soundBank.Snapshot(),
		soundLatch:    b.soundLatch.Snapshot(),
		beast:         b.BeastPorts.Snapshot(),
		okiL:          b.OkiL.Snapshot(),
		okiR:          b.OkiR.Snapshot(),
		masterLines:   b.Master.Lines().Snapshot(),
		slaveLines:    b.Slave.Lines().Snapshot(),
		soundLines:    b.Sound.Lines().Snapshot(),
		beastLines:    b.Beast.Lines().Snapshot(),
		videoReg:      b.videoReg,
		scrollX:       b.scrollX,
		scrollY:       b.scrollY,
		coinReg:       b.coinReg.Snapshot(),
		coinCounters:  b.CoinCounters,
		scanLine:      b.scanline.line,
		scanRemaining: b.scanline.remaining,
	}

	s.rams = make([]*memory.RAM, len(b.rams))
	for i, r := range b.rams {
		s.rams[i] = r.Snapshot()
	}

	return s
}

// Plumb a previously snapshotted State back into the board.
func (b *Board) Plumb(s *State) {
	b.masterBank.Plumb(s.masterBank)
	b.slaveBank.Plumb(s.slaveBank)
	b.soundBank.Plumb(s.soundBank)
	b.soundLatch.Plumb(s.soundLatch, b.soundPending)
	b.BeastPorts.Plumb(s.beast, b.Beast.Lines(), b.Slave.Lines())
	b.OkiL.Plumb(s.okiL, b.mixerL)
	b.OkiR.Plumb(s.okiR, b.mixerR)
	b.Master.Lines().Plumb(s.masterLines)
	b.Slave.Lines().Plumb(s.slaveLines)
	b.Sound.Lines().Plumb(s.soundLines)
	b.Beast.Lines().Plumb(s.beastLines)
	b.videoReg = s.videoReg
	b.scrollX = s.scrollX
	b.scrollY = s.scrollY
	b.coinReg = s.coinReg
	b.CoinCounters = s.coinCounters
	b.scanline.line = s.scanLine
	b.scanline.remaining = s.scanRemaining

	for i, r := range b.rams {
		r.Plumb(s.rams[i])
	}
}
