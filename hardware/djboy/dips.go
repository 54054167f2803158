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
	"github.com/shiyutian/tilt/hardware/input"
)

// input ports and DIP switch banks, bit for bit from the operator's manual.
// all switches are active low
func (b *Board) inputs() {
	b.IN0 = input.NewPort("IN0", 0xff, []input.Switch{
		{Label: "Start 1", Bit: 0, ActiveLow: true},
		{Label: "Start 2", Bit: 1, ActiveLow: true},
		{Label: "Coin 1", Bit: 2, ActiveLow: true},
		{Label: "Coin 2", Bit: 3, ActiveLow: true},
		{Label: "Test", Bit: 4, ActiveLow: true},
		{Label: "Tilt", Bit: 5, ActiveLow: true},
		{Label: "Service", Bit: 6, ActiveLow: true},
	})

	b.IN1 = playerPort("IN1")
	b.IN2 = playerPort("IN2")

	b.DSW1 = input.NewDIPBank("DSW1", []input.Setting{
		{
			Label: "Flip Screen",
			Mask:  0x02,
			Choices: map[string]uint8{
				"Off": 0x00,
				"On":  0x02,
			},
			Default: 0x00,
		},
		{
			Label: "Service Mode",
			Mask:  0x04,
			Choices: map[string]uint8{
				"Off": 0x00,
				"On":  0x04,
			},
			Default: 0x00,
		},
		{
			Label: "Coin A",
			Mask:  0x30,
			Choices: map[string]uint8{
				"2C/1C": 0x20,
				"1C/1C": 0x00,
				"2C/3C": 0x30,
				"1C/2C": 0x10,
			},
			Default: 0x00,
		},
		{
			Label: "Coin B",
			Mask:  0xc0,
			Choices: map[string]uint8{
				"2C/1C": 0x80,
				"1C/1C": 0x00,
				"2C/3C": 0xc0,
				"1C/2C": 0x40,
			},
			Default: 0x00,
		},
	})

	b.DSW2 = input.NewDIPBank("DSW2", []input.Setting{
		{
			Label: "Difficulty",
			Mask:  0x03,
			Choices: map[string]uint8{
				"Easy":    0x01,
				"Normal":  0x00,
				"Hard":    0x02,
				"Hardest": 0x03,
			},
			Default: 0x00,
		},
		{
			Label: "Bonus Levels (in thousands)",
			Mask:  0x0c,
			Choices: map[string]uint8{
				"10,30,50,70,90":             0x00,
				"10,20,30,40,50,60,70,80,90": 0x04,
				"20,50":                      0x08,
				"None":                       0x0c,
			},
			Default: 0x00,
		},
		{
			Label: "Lives",
			Mask:  0x30,
			Choices: map[string]uint8{
				"3": 0x10,
				"5": 0x00,
				"7": 0x20,
				"9": 0x30,
			},
			Default: 0x00,
		},
		{
			Label: "Demo Sounds",
			Mask:  0x40,
			Choices: map[string]uint8{
				"Off": 0x40,
				"On":  0x00,
			},
			Default: 0x00,
		},
		{
			Label: "Stereo Sound",
			Mask:  0x80,
			Choices: map[string]uint8{
				"Off": 0x80,
				"On":  0x00,
			},
			Default: 0x80,
		},
	})
}

func playerPort(label string) *input.Port {
	return input.NewPort(label, 0xff, []input.Switch{
		{Label: "Up", Bit: 0, ActiveLow: true},
		{Label: "Down", Bit: 1, ActiveLow: true},
		{Label: "Left", Bit: 2, ActiveLow: true},
		{Label: "Right", Bit: 3, ActiveLow: true},
		{Label: "Punch", Bit: 4, ActiveLow: true},
		{Label: "Kick", Bit: 5, ActiveLow: true},
		{Label: "Jump", Bit: 6, ActiveLow: true},
	})
}
