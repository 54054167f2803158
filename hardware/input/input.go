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

// Package input implements the switch inputs of an emulated board. Two types
// of input are supported: momentary switches (buttons, coin slots, service
// switches) gathered into a Port; and configuration DIP switches gathered
// into a DIPBank.
//
// Arcade hardware almost always wires switches active-low, with a pull-up
// resistor holding the line high while the switch is open. Both Port and
// DIPBank present the value as the CPU would read it, so a released
// active-low switch reads as a one bit.
package input

import (
	"strings"

	"github.com/shiyutian/tilt/curated"
)

// sentinal error messages
const (
	// NoSuchSwitch is returned when a switch or setting name is not
	// recognised by the port or bank it was addressed to.
	NoSuchSwitch = "input: %s: no switch named %s"

	// NoSuchChoice is returned when a DIP setting does not offer the named
	// choice.
	NoSuchChoice = "input: %s: setting %s has no choice named %s"
)

// Switch describes a single momentary switch in a Port.
type Switch struct {
	Label string

	// the bit (0 to 7) the switch drives
	Bit int

	// an active-low switch reads zero when held
	ActiveLow bool
}

// Port is a byte-wide bank of momentary switches. Bits with no switch
// assigned read as the port's idle value.
type Port struct {
	label    string
	switches []Switch

	// current held state, indexed into switches
	held []bool

	// value of bits not claimed by any switch
	idle uint8
}

// NewPort is the preferred method of initialisation for the Port type. The
// idle argument gives the value of unassigned bits.
func NewPort(label string, idle uint8, switches []Switch) *Port {
	return &Port{
		label:    label,
		switches: switches,
		held:     make([]bool, len(switches)),
		idle:     idle,
	}
}

// Label returns the name given to the port on creation.
func (p *Port) Label() string {
	return p.label
}

// Set changes the held state of the named switch.
func (p *Port) Set(label string, held bool) error {
	for i := range p.switches {
		if p.switches[i].Label == label {
			p.held[i] = held
			return nil
		}
	}
	return curated.Errorf(NoSuchSwitch, p.label, label)
}

// Value returns the port as the CPU reads it.
func (p *Port) Value() uint8 {
	var claimed uint8
	var v uint8

	for i, sw := range p.switches {
		mask := uint8(1) << sw.Bit
		claimed |= mask

		active := p.held[i]
		if sw.ActiveLow {
			active = !active
		}
		if active {
			v |= mask
		}
	}

	return v | (p.idle &^ claimed)
}

// Setting describes one DIP switch setting, which may span several bits of
// the bank.
type Setting struct {
	Label string

	// which bits of the bank the setting occupies
	Mask uint8

	// map of choice name to the masked value it selects. values are stored
	// pre-shifted, as they appear on the bank
	Choices map[string]uint8

	// the value selected on reset
	Default uint8
}

// DIPBank is a byte-wide bank of configuration DIP switches, divided into
// named settings.
type DIPBank struct {
	label    string
	settings []Setting
	value    uint8
}

// NewDIPBank is the preferred method of initialisation for the DIPBank type.
// The bank starts with every setting at its default.
func NewDIPBank(label string, settings []Setting) *DIPBank {
	b := &DIPBank{
		label:    label,
		settings: settings,
	}
	b.Reset()
	return b
}

// Label returns the name given to the bank on creation.
func (b *DIPBank) Label() string {
	return b.label
}

// Reset returns every setting to its default choice.
func (b *DIPBank) Reset() {
	b.value = 0
	for _, s := range b.settings {
		b.value |= s.Default & s.Mask
	}
}

// Select chooses the named choice for the named setting.
func (b *DIPBank) Select(setting string, choice string) error {
	for _, s := range b.settings {
		if s.Label != setting {
			continue
		}
		v, ok := s.Choices[choice]
		if !ok {
			return curated.Errorf(NoSuchChoice, b.label, setting, choice)
		}
		b.value = (b.value &^ s.Mask) | (v & s.Mask)
		return nil
	}
	return curated.Errorf(NoSuchSwitch, b.label, setting)
}

// Value returns the bank as the CPU reads it.
func (b *DIPBank) Value() uint8 {
	return b.value
}

// String returns the current choice of every setting in the bank.
func (b *DIPBank) String() string {
	s := strings.Builder{}
	for _, set := range b.settings {
		cur := b.value & set.Mask
		for name, v := range set.Choices {
			if v&set.Mask == cur {
				s.WriteString(set.Label)
				s.WriteString(": ")
				s.WriteString(name)
				s.WriteString("\n")
				break
			}
		}
	}
	return s.String()
}
