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

// Package bank implements the bank-switch unit found on boards whose ROM
// images are larger than the address space of the core reading them. A
// fixed window of the core's address space is mapped onto one of a number
// of equally sized entries in the backing image. Which entry is selected is
// under program control, usually through a write to an I/O port.
package bank

import (
	"fmt"

	"github.com/shiyutian/tilt/curated"
)

// Policy decides what happens when a selected entry is out of range or
// unconfigured.
type Policy int

// List of valid Policy values.
//
// MaskIndex reduces the raw index with an AND of the entry count minus one,
// mirroring address decoders that simply ignore the upper bits. IgnoreIndex
// leaves the current selection in place. Neither policy is ever an error at
// runtime.
const (
	MaskIndex Policy = iota
	IgnoreIndex
)

func (p Policy) String() string {
	switch p {
	case MaskIndex:
		return "mask"
	case IgnoreIndex:
		return "ignore"
	}
	panic("unknown bank policy")
}

// Bank maps a window of a core's address space onto a selectable entry of a
// larger backing image.
type Bank struct {
	label    string
	bankSize int
	policy   Policy

	// transform applied to the raw index before any policy or lookup.
	// hardware revisions of the same board sometimes scramble the bank
	// select lines; the transform normalises them to one layout
	xor uint8

	// each entry is a slice into the backing image. a nil entry has not
	// been configured
	entries [][]uint8

	// the currently selected entry
	current int
}

// NewBank is the preferred method of initialisation for the Bank type. For
// the MaskIndex policy the number of entries must be a power of two.
func NewBank(label string, numEntries int, bankSize int, policy Policy) (*Bank, error) {
	if numEntries < 1 || bankSize < 1 {
		return nil, curated.Errorf("bank: %s: invalid geometry: %d entries of %#x bytes", label, numEntries, bankSize)
	}
	if policy == MaskIndex && numEntries&(numEntries-1) != 0 {
		return nil, curated.Errorf("bank: %s: mask policy requires a power-of-two entry count: %d", label, numEntries)
	}

	return &Bank{
		label:    label,
		bankSize: bankSize,
		policy:   policy,
		entries:  make([][]uint8, numEntries),
	}, nil
}

// SetTransform sets the XOR transform applied to the raw index on every
// Select(). Returns the Bank so the option can be chained at creation.
func (b *Bank) SetTransform(xor uint8) *Bank {
	b.xor = xor
	return b
}

func (b *Bank) String() string {
	return fmt.Sprintf("%s: bank %d of %d", b.label, b.current, len(b.entries))
}

// Label returns the name given to the bank at creation.
func (b *Bank) Label() string {
	return b.label
}

// ConfigureEntries maps a run of entries onto the backing image, starting
// at the given offset. Entry start+0 reads backing[offset:offset+size],
// entry start+1 the next size bytes, and so on. Called at machine
// configuration time; errors are fatal at setup.
func (b *Bank) ConfigureEntries(start int, count int, backing []uint8, offset int) error {
	if start < 0 || start+count > len(b.entries) {
		return curated.Errorf("bank: %s: entries %d to %d out of range", b.label, start, start+count-1)
	}
	if offset < 0 || offset+count*b.bankSize > len(backing) {
		return curated.Errorf("bank: %s: backing image too small for %d entries at offset %#x", b.label, count, offset)
	}

	for i := 0; i < count; i++ {
		o := offset + i*b.bankSize
		b.entries[start+i] = backing[o : o+b.bankSize]
	}

	return nil
}

// ConfigureEntry maps a single entry onto the backing image.
func (b *Bank) ConfigureEntry(entry int, backing []uint8, offset int) error {
	return b.ConfigureEntries(entry, 1, backing, offset)
}

// Select changes the active entry. The raw index is first XORed with the
// configured transform. Out-of-range and unconfigured indices are handled
// according to the configured policy and are never an error.
func (b *Bank) Select(index uint8) {
	index ^= b.xor

	i := int(index)

	switch b.policy {
	case MaskIndex:
		i &= len(b.entries) - 1
	case IgnoreIndex:
		if i >= len(b.entries) {
			return
		}
	}

	if b.entries[i] == nil {
		// selecting an unconfigured entry leaves the current selection
		// in place
		return
	}

	b.current = i
}

// Entry returns the index of the currently selected entry.
func (b *Bank) Entry() int {
	return b.current
}

// NumEntries returns the number of entries in the bank.
func (b *Bank) NumEntries() int {
	return len(b.entries)
}

// BankSize returns the size of the mapped window in bytes.
func (b *Bank) BankSize() int {
	return b.bankSize
}

// Read returns the byte at the given offset into the currently selected
// entry.
func (b *Bank) Read(offset uint16) (uint8, error) {
	if int(offset) >= b.bankSize {
		return 0, curated.Errorf("bank: %s: offset %#04x beyond window of %#x bytes", b.label, offset, b.bankSize)
	}
	e := b.entries[b.current]
	if e == nil {
		// can only happen if no entry was ever configured
		return 0, curated.Errorf("bank: %s: no entry configured", b.label)
	}
	return e[offset], nil
}

// Reset returns the bank to its power-on state: the lowest configured
// entry is selected.
func (b *Bank) Reset() {
	for i := range b.entries {
		if b.entries[i] != nil {
			b.current = i
			return
		}
	}
	b.current = 0
}

// Snapshot creates a copy of the Bank instance. The backing image is shared
// with the copy, not duplicated: only the selection state is rewindable.
func (b *Bank) Snapshot() *Bank {
	cp := *b
	return &cp
}

// Plumb a previously snapshotted Bank.
func (b *Bank) Plumb(s *Bank) {
	*b = *s
}
