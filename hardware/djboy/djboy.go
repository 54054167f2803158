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

// Package djboy defines the Kaneko DJ Boy arcade board: three Z80 cores
// (master, slave, sound), the BEAST protection MCU, and the plumbing
// between them. The master and slave share a window of RAM and hand work
// to each other through interrupt lines; the slave talks to the MCU
// through a pair of mailboxes and to the sound CPU through a third; the
// sound CPU drives an FM chip and two sample players.
package djboy

import (
	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/hardware"
	"github.com/shiyutian/tilt/hardware/audio"
	"github.com/shiyutian/tilt/hardware/bank"
	"github.com/shiyutian/tilt/hardware/core"
	"github.com/shiyutian/tilt/hardware/edge"
	"github.com/shiyutian/tilt/hardware/input"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/latch"
	"github.com/shiyutian/tilt/hardware/memory"
	"github.com/shiyutian/tilt/hardware/peripherals/mcu"
	"github.com/shiyutian/tilt/hardware/peripherals/oki"
	"github.com/shiyutian/tilt/hardware/preferences"
)

// ClockHz is the clock rate of each of the three Z80 cores.
const ClockHz = 6000000

// Revision selects the bank numbering of the master ROM set. The Japanese
// sets store banks in the complementary order.
type Revision int

// List of valid Revision values.
const (
	World Revision = iota
	Japan
)

func (r Revision) bankXor() uint8 {
	if r == Japan {
		return 0x1f
	}
	return 0x00
}

// ROMs collects the binary regions the board is built from.
type ROMs struct {
	Master []uint8 // 0x40000
	Slave  []uint8 // 0x30000
	Sound  []uint8 // 0x20000
	// the MCU internal program. the MCU's behaviour is handled by the port
	// handlers rather than by executing this image but the dump is part of
	// the set and is validated with the rest
	Beast []uint8 // 0x1000
	Oki    []uint8 // 0x40000, sample data for both players
}

// sentinal error messages
const (
	// SetupError is returned when the board cannot be built.
	SetupError = "djboy: %v"
)

func (r ROMs) validate() error {
	chk := []struct {
		label string
		data  []uint8
		size  int
	}{
		{"master", r.Master, 0x40000},
		{"slave", r.Slave, 0x30000},
		{"sound", r.Sound, 0x20000},
		{"beast", r.Beast, 0x1000},
		{"oki", r.Oki, 0x40000},
	}
	for _, c := range chk {
		if len(c.data) != c.size {
			return curated.Errorf(SetupError,
				curated.Errorf("%s region is %#x bytes, expected %#x", c.label, len(c.data), c.size))
		}
	}
	return nil
}

// Board is the DJ Boy machine.
type Board struct {
	Mch *hardware.Machine

	// the three Z80 cores and the MCU core, in scheduling order
	Master *core.Scripted
	Slave  *core.Scripted
	Sound  *core.Scripted
	Beast  *core.Scripted

	// memory and I/O maps per core
	MasterMem *memory.Map
	MasterIO  *memory.Map
	SlaveMem  *memory.Map
	SlaveIO   *memory.Map
	SoundMem  *memory.Map
	SoundIO   *memory.Map
	BeastIO   *memory.Map

	masterBank *bank.Bank
	slaveBank  *bank.Bank
	soundBank  *bank.Bank

	// sound commands from the slave. pending commands fire the sound
	// CPU's NMI
	soundLatch *latch.Latch

	// the MCU port bridge. its Command and Reply mailboxes carry the
	// slave<->MCU handshake
	BeastPorts *mcu.Ports

	fm   *fm
	OkiL *oki.Player
	OkiR *oki.Player

	IN0  *input.Port
	IN1  *input.Port
	IN2  *input.Port
	DSW1 *input.DIPBank
	DSW2 *input.DIPBank

	scanline *scanlineTimer

	// video register: bank bits plus scroll msb and flip. scroll registers
	// kept for completeness, nothing in the plumbing reads them back
	videoReg uint8
	scrollX  uint8
	scrollY  uint8

	coinReg      edge.Register
	CoinCounters [2]int

	// every RAM on the board, in a fixed order for save states
	rams []*memory.RAM

	mixerL audio.Mixer
	mixerR audio.Mixer
}

// NewBoard is the preferred method of initialisation for the Board type.
// The two mixers receive the left and right sample player outputs; either
// can be nil.
func NewBoard(roms ROMs, rev Revision, prefs *preferences.Preferences,
	mixerL audio.Mixer, mixerR audio.Mixer) (*Board, error) {
	if err := roms.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		coinReg: edge.NewRegister(0x00),
		mixerL:  mixerL,
		mixerR:  mixerR,
	}

	var err error

	b.Mch, err = hardware.NewMachine("djboy", prefs)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}
	env := b.Mch.Env

	// address maps. the Z80 data bus floats high on unmapped reads
	b.MasterMem = memory.NewMap(env, "master", 0xff)
	b.MasterIO = memory.NewMap(env, "master io", 0xff)
	b.SlaveMem = memory.NewMap(env, "slave", 0xff)
	b.SlaveIO = memory.NewMap(env, "slave io", 0xff)
	b.SoundMem = memory.NewMap(env, "sound", 0xff)
	b.SoundIO = memory.NewMap(env, "sound io", 0xff)
	b.BeastIO = memory.NewMap(env, "beast ports", 0xff)

	b.Master = core.NewScripted("master", b.MasterMem)
	b.Master.SetIOMap(b.MasterIO)
	b.Slave = core.NewScripted("slave", b.SlaveMem)
	b.Slave.SetIOMap(b.SlaveIO)
	b.Sound = core.NewScripted("sound", b.SoundMem)
	b.Sound.SetIOMap(b.SoundIO)
	b.Beast = core.NewScripted("beast", b.BeastIO)

	b.Mch.AddCore(b.Master)
	b.Mch.AddCore(b.Slave)
	b.Mch.AddCore(b.Sound)
	b.Mch.AddCore(b.Beast)

	if err := b.banks(roms, rev); err != nil {
		return nil, err
	}

	b.inputs()

	b.soundLatch = latch.NewLatch("sound latch").OnPending(b.soundPending)
	b.BeastPorts = mcu.NewPorts("beast", b.Beast.Lines(), b.Slave.Lines(),
		b.IN0, b.IN1, b.IN2, b.DSW1, b.DSW2)

	b.fm = newFM()
	b.OkiL = oki.NewPlayer("oki left", roms.Oki, mixerL)
	b.OkiR = oki.NewPlayer("oki right", roms.Oki, mixerR)
	b.Mch.AddTicker(b.OkiL)
	b.Mch.AddTicker(b.OkiR)

	b.scanline = newScanlineTimer(b.Master.Lines(), b.Slave.Lines(), b.Sound.Lines())
	b.Mch.AddTicker(b.scanline)

	if err := b.maps(roms); err != nil {
		return nil, err
	}

	b.Mch.AddResetter(func() {
		b.masterBank.Reset()
		b.slaveBank.Reset()
		b.soundBank.Reset()
		b.soundLatch.Reset()
		b.BeastPorts.Reset()
		b.fm.reset()
		b.OkiL.Reset()
		b.OkiR.Reset()
		b.scanline.reset()
		b.videoReg = 0
		b.scrollX = 0
		b.scrollY = 0
		b.coinReg = edge.NewRegister(0x00)
		b.CoinCounters = [2]int{}
	})

	return b, nil
}

func (b *Board) banks(roms ROMs, rev Revision) error {
	var err error

	b.masterBank, err = bank.NewBank("master bank", 32, 0x2000, bank.MaskIndex)
	if err != nil {
		return curated.Errorf(SetupError, err)
	}
	b.masterBank.SetTransform(rev.bankXor())
	if err = b.masterBank.ConfigureEntries(0, 32, roms.Master, 0x00000); err != nil {
		return curated.Errorf(SetupError, err)
	}

	// entries 4 to 7 are not populated: the second ROM starts at entry 8
	b.slaveBank, err = bank.NewBank("slave bank", 16, 0x4000, bank.IgnoreIndex)
	if err != nil {
		return curated.Errorf(SetupError, err)
	}
	if err = b.slaveBank.ConfigureEntries(0, 4, roms.Slave, 0x00000); err != nil {
		return curated.Errorf(SetupError, err)
	}
	if err = b.slaveBank.ConfigureEntries(8, 8, roms.Slave, 0x10000); err != nil {
		return curated.Errorf(SetupError, err)
	}

	b.soundBank, err = bank.NewBank("sound bank", 8, 0x4000, bank.MaskIndex)
	if err != nil {
		return curated.Errorf(SetupError, err)
	}
	if err = b.soundBank.ConfigureEntries(0, 8, roms.Sound, 0x00000); err != nil {
		return curated.Errorf(SetupError, err)
	}

	return nil
}

func (b *Board) soundPending(pending bool) {
	if pending {
		b.Sound.Lines().Set(irq.NMI, irq.Pulse)
	}
}

func (b *Board) maps(roms ROMs) error {
	env := b.Mch.Env

	type area struct {
		m      *memory.Map
		label  string
		origin uint16
		memtop uint16
		h      memory.Handlers
	}

	spriteRAM := memory.NewRAM(env, "sprite ram", 0x1000)
	sharedRAM := memory.NewRAM(env, "shared ram", 0x2000)
	masterRAM := memory.NewRAM(env, "master ram", 0x1000)
	videoRAM := memory.NewRAM(env, "video ram", 0x1000)
	paletteRAM := memory.NewRAM(env, "palette ram", 0x400)
	slaveRAM := memory.NewRAM(env, "slave ram", 0x500)
	soundRAM := memory.NewRAM(env, "sound ram", 0x2000)

	b.rams = []*memory.RAM{spriteRAM, sharedRAM, masterRAM, videoRAM, paletteRAM, slaveRAM, soundRAM}

	masterROM := memory.NewROM("master rom", roms.Master[:0x8000])
	masterROMHi := memory.NewROM("master rom 8000", roms.Master[0x8000:0xb000])
	slaveROM := memory.NewROM("slave rom", roms.Slave[:0x8000])
	soundROM := memory.NewROM("sound rom", roms.Sound[:0x8000])

	areas := []area{
		// master memory
		{b.MasterMem, "rom", 0x0000, 0x7fff, masterROM.Handlers()},
		{b.MasterMem, "rom 8000", 0x8000, 0xafff, masterROMHi.Handlers()},
		{b.MasterMem, "sprite ram", 0xb000, 0xbfff, spriteRAM.Handlers()},
		{b.MasterMem, "banked rom", 0xc000, 0xdfff, memory.Handlers{Read: b.masterBank.Read}},
		{b.MasterMem, "shared ram", 0xe000, 0xefff, sharedRAM.Handlers()},
		{b.MasterMem, "ram", 0xf000, 0xffff, masterRAM.Handlers()},

		// master io
		{b.MasterIO, "bank select", 0x00, 0x00, memory.Handlers{Write: b.masterBankW}},

		// slave memory
		{b.SlaveMem, "rom", 0x0000, 0x7fff, slaveROM.Handlers()},
		{b.SlaveMem, "banked rom", 0x8000, 0xbfff, memory.Handlers{Read: b.slaveBank.Read}},
		{b.SlaveMem, "video ram", 0xc000, 0xcfff, videoRAM.Handlers()},
		{b.SlaveMem, "palette ram", 0xd000, 0xd3ff, paletteRAM.Handlers()},
		{b.SlaveMem, "ram", 0xd400, 0xd8ff, slaveRAM.Handlers()},
		{b.SlaveMem, "shared ram", 0xe000, 0xffff, sharedRAM.Handlers()},

		// slave io
		{b.SlaveIO, "bank/video", 0x00, 0x00, memory.Handlers{Write: b.slaveBankW}},
		{b.SlaveIO, "sound latch", 0x02, 0x02, memory.Handlers{Write: b.soundLatchW}},
		{b.SlaveIO, "beast mailbox", 0x04, 0x04, memory.Handlers{Read: b.beastReplyR, Write: b.beastCommandW}},
		{b.SlaveIO, "scroll y", 0x06, 0x06, memory.Handlers{Write: b.scrollYW}},
		{b.SlaveIO, "scroll x", 0x08, 0x08, memory.Handlers{Write: b.scrollXW}},
		{b.SlaveIO, "master nmi", 0x0a, 0x0a, memory.Handlers{Write: b.masterNMIW}},
		{b.SlaveIO, "beast status", 0x0c, 0x0c, memory.Handlers{Read: b.beastStatusR}},
		{b.SlaveIO, "coin counter", 0x0e, 0x0e, memory.Handlers{Write: b.coinCountW}},

		// sound memory
		{b.SoundMem, "rom", 0x0000, 0x7fff, soundROM.Handlers()},
		{b.SoundMem, "banked rom", 0x8000, 0xbfff, memory.Handlers{Read: b.soundBank.Read}},
		{b.SoundMem, "ram", 0xc000, 0xdfff, soundRAM.Handlers()},

		// sound io
		{b.SoundIO, "bank select", 0x00, 0x00, memory.Handlers{Write: b.soundBankW}},
		{b.SoundIO, "fm", 0x02, 0x03, memory.Handlers{Read: b.fm.read, Write: b.fm.write}},
		{b.SoundIO, "sound latch", 0x04, 0x04, memory.Handlers{Read: b.soundLatchR}},
		{b.SoundIO, "oki left", 0x06, 0x06, memory.Handlers{Read: b.OkiL.StatusRead, Write: b.OkiL.CommandWrite}},
		{b.SoundIO, "oki right", 0x07, 0x07, memory.Handlers{Read: b.OkiR.StatusRead, Write: b.OkiR.CommandWrite}},

		// beast ports
		{b.BeastIO, "p0", 0x00, 0x00, memory.Handlers{Read: b.beastP0R, Write: b.beastP0W}},
		{b.BeastIO, "p1", 0x01, 0x01, memory.Handlers{Read: b.beastP1R, Write: b.beastP1W}},
		{b.BeastIO, "p2", 0x02, 0x02, memory.Handlers{Read: b.beastP2R, Write: b.beastP2W}},
		{b.BeastIO, "p3", 0x03, 0x03, memory.Handlers{Read: b.beastP3R, Write: b.beastP3W}},
	}

	for _, a := range areas {
		if err := a.m.AddArea(a.label, a.origin, a.memtop, a.h); err != nil {
			return curated.Errorf(SetupError, err)
		}
	}

	b.Mch.AddResetter(func() {
		spriteRAM.Reset()
		sharedRAM.Reset()
		masterRAM.Reset()
		videoRAM.Reset()
		paletteRAM.Reset()
		slaveRAM.Reset()
		soundRAM.Reset()
	})

	return nil
}

// Reset the board and everything attached to it.
func (b *Board) Reset() {
	b.Mch.Reset()
}

// LoadSamples replaces ADPCM samples in both sample players with the PCM
// recordings found in the named directory.
func (b *Board) LoadSamples(dir string) error {
	if err := b.OkiL.LoadSampleSet(dir); err != nil {
		return err
	}
	return b.OkiR.LoadSampleSet(dir)
}
