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
	"github.com/shiyutian/tilt/romset"
)

// Sets returns the ROM set definition for the given board revision. The
// file names and checksums are those of the original dumps. Graphics
// regions are not listed: nothing on the board reads them.
func Sets(rev Revision) romset.Set {
	switch rev {
	case Japan:
		return romset.Set{
			Name: "djboyj",
			Regions: []romset.Region{
				{Name: "master", Size: 0x40000, Files: []romset.File{
					{Name: "bs12.4b", Offset: 0x00000, Size: 0x20000, CRC32: 0x0971523e, SHA1: "f90cd02cedf8632f4b651de7ea75dc8c0e682f6e"},
					{Name: "bs100.4d", Offset: 0x20000, Size: 0x20000, CRC32: 0x081e8af8, SHA1: "3589dab1cf31b109a40370b4db1f31785023e2ed"},
				}},
				{Name: "slave", Size: 0x30000, Files: []romset.File{
					{Name: "bs13.5y", Offset: 0x00000, Size: 0x10000, CRC32: 0x5c3f2f96, SHA1: "bb7ee028a2d8d3c76a78a29fba60bcc36e9399f5"},
					{Name: "bs101.6w", Offset: 0x10000, Size: 0x20000, CRC32: 0xa7c85577, SHA1: "8296b96d5f69f6c730b7ed77fa8c93496b33529c"},
				}},
				{Name: "sound", Size: 0x20000, Files: []romset.File{
					{Name: "bs200.8c", Offset: 0x00000, Size: 0x20000, CRC32: 0xf6c19e51, SHA1: "82193f71122df07cce0a7f057a87b89eb2d587a1"},
				}},
				{Name: "beast", Size: 0x1000, Files: []romset.File{
					{Name: "beast.9s", Offset: 0x0000, Size: 0x1000, CRC32: 0xebe0f5f3, SHA1: "6081343c9b4510c4c16b71f6340266a1f76170ac"},
				}},
				{Name: "oki", Size: 0x40000, Files: []romset.File{
					{Name: "bs-204.5j", Offset: 0x00000, Size: 0x40000, CRC32: 0x510244f0, SHA1: "afb502d46d268ad9cd209ae1da72c50e4e785626"},
				}},
			},
		}

	default:
		return romset.Set{
			Name: "djboy",
			Regions: []romset.Region{
				{Name: "master", Size: 0x40000, Files: []romset.File{
					{Name: "bs64.4b", Offset: 0x00000, Size: 0x20000, CRC32: 0xb77aacc7, SHA1: "78100d4695738a702f13807526eb1bcac759cce3"},
					{Name: "bs100.4d", Offset: 0x20000, Size: 0x20000, CRC32: 0x081e8af8, SHA1: "3589dab1cf31b109a40370b4db1f31785023e2ed"},
				}},
				{Name: "slave", Size: 0x30000, Files: []romset.File{
					{Name: "bs65.5y", Offset: 0x00000, Size: 0x10000, CRC32: 0x0f1456eb, SHA1: "62ed48c0d71c1fabbb3f6ada60381f57f692cef8"},
					{Name: "bs101.6w", Offset: 0x10000, Size: 0x20000, CRC32: 0xa7c85577, SHA1: "8296b96d5f69f6c730b7ed77fa8c93496b33529c"},
				}},
				{Name: "sound", Size: 0x20000, Files: []romset.File{
					{Name: "bs200.8c", Offset: 0x00000, Size: 0x20000, CRC32: 0xf6c19e51, SHA1: "82193f71122df07cce0a7f057a87b89eb2d587a1"},
				}},
				{Name: "beast", Size: 0x1000, Files: []romset.File{
					{Name: "beast.9s", Offset: 0x0000, Size: 0x1000, CRC32: 0xebe0f5f3, SHA1: "6081343c9b4510c4c16b71f6340266a1f76170ac"},
				}},
				{Name: "oki", Size: 0x40000, Files: []romset.File{
					{Name: "bs203.5j", Offset: 0x00000, Size: 0x40000, CRC32: 0x805341fb, SHA1: "fb94e400e2283aaa806814d5a39d6196457dc822"},
				}},
			},
		}
	}
}

// ROMsFromRegions builds the board's ROMs from regions assembled by the
// romset package.
func ROMsFromRegions(regions map[string][]uint8) (ROMs, error) {
	r := ROMs{
		Master: regions["master"],
		Slave:  regions["slave"],
		Sound:  regions["sound"],
		Beast:  regions["beast"],
		Oki:    regions["oki"],
	}
	if err := r.validate(); err != nil {
		return ROMs{}, err
	}
	return r, nil
}
