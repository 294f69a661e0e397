package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// AddressSpaceSize is the size of the 32-bit byte-addressable space.
const AddressSpaceSize = uint64(1) << 32

// WordSize is the size of a memory word in bytes.
const WordSize = 4

// ErrAddressOutOfRange is returned when a word access runs past the end of
// the address space.
var ErrAddressOutOfRange = errors.New("memory access out of range")

// Memory is a byte-addressable, big-endian word memory. It is used both as
// the instruction memory and as the data memory of the datapath.
//
// The port-style interface (SetAddress, SetData, SetMemRead, SetMemWrite,
// Run, Data) performs at most one word access per Run. Bytes live in an
// Akita storage, which allocates backing units on first touch.
type Memory struct {
	storage *mem.Storage

	address  uint32
	data     uint32
	memRead  bool
	memWrite bool
	readData uint32

	// words records every word-aligned address that has been written.
	words map[uint32]struct{}
	// lowest and highest word addresses loaded or written.
	lowest, highest uint32
	loaded          bool
}

// NewMemory creates an empty memory covering the 32-bit address space.
func NewMemory() *Memory {
	return &Memory{
		storage: mem.NewStorage(AddressSpaceSize),
		words:   make(map[uint32]struct{}),
	}
}

// SetAddress sets the address port.
func (m *Memory) SetAddress(addr uint32) {
	m.address = addr
}

// SetData sets the write-data port.
func (m *Memory) SetData(value uint32) {
	m.data = value
}

// SetMemRead sets the MemRead control input.
func (m *Memory) SetMemRead(read bool) {
	m.memRead = read
}

// SetMemWrite sets the MemWrite control input.
func (m *Memory) SetMemWrite(write bool) {
	m.memWrite = write
}

// Run performs the access selected by the control inputs. A read takes
// precedence over a write; with neither set the read-data port drives 0.
func (m *Memory) Run() error {
	m.readData = 0

	switch {
	case m.memRead:
		value, err := m.Read32(m.address)
		if err != nil {
			return err
		}
		m.readData = value
	case m.memWrite:
		return m.Write32(m.address, m.data)
	}

	return nil
}

// Data returns the value on the read-data port after the last Run.
func (m *Memory) Data() uint32 {
	return m.readData
}

// Read32 reads a big-endian word directly, bypassing the ports.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if uint64(addr)+WordSize > AddressSpaceSize {
		return 0, fmt.Errorf("%w: read at 0x%08X", ErrAddressOutOfRange, addr)
	}

	buf, err := m.storage.Read(uint64(addr), WordSize)
	if err != nil {
		return 0, fmt.Errorf("failed to read word at 0x%08X: %w", addr, err)
	}

	return binary.BigEndian.Uint32(buf), nil
}

// Write32 writes a big-endian word directly, bypassing the ports.
func (m *Memory) Write32(addr uint32, value uint32) error {
	if uint64(addr)+WordSize > AddressSpaceSize {
		return fmt.Errorf("%w: write at 0x%08X", ErrAddressOutOfRange, addr)
	}

	buf := make([]byte, WordSize)
	binary.BigEndian.PutUint32(buf, value)
	if err := m.storage.Write(uint64(addr), buf); err != nil {
		return fmt.Errorf("failed to write word at 0x%08X: %w", addr, err)
	}

	m.track(addr)
	return nil
}

// LoadWords writes consecutive words starting at base.
func (m *Memory) LoadWords(base uint32, words []uint32) error {
	for i, w := range words {
		if err := m.Write32(base+uint32(i)*WordSize, w); err != nil {
			return err
		}
	}
	return nil
}

// LoadBytes copies raw bytes starting at base. The touched words become
// part of the loaded range.
func (m *Memory) LoadBytes(base uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if uint64(base)+uint64(len(data)) > AddressSpaceSize {
		return fmt.Errorf("%w: %d bytes at 0x%08X", ErrAddressOutOfRange, len(data), base)
	}

	if err := m.storage.Write(uint64(base), data); err != nil {
		return fmt.Errorf("failed to load %d bytes at 0x%08X: %w", len(data), base, err)
	}

	first := base &^ (WordSize - 1)
	last := (base + uint32(len(data)) - 1) &^ (WordSize - 1)
	for addr := first; ; addr += WordSize {
		m.track(addr)
		if addr == last {
			break
		}
	}
	return nil
}

func (m *Memory) track(addr uint32) {
	aligned := addr &^ (WordSize - 1)
	m.words[aligned] = struct{}{}

	if !m.loaded {
		m.lowest, m.highest = aligned, aligned
		m.loaded = true
		return
	}
	if aligned < m.lowest {
		m.lowest = aligned
	}
	if aligned > m.highest {
		m.highest = aligned
	}
}

// EndingAddress returns the highest word address that has been loaded or
// written. The second result is false when the memory is empty.
func (m *Memory) EndingAddress() (uint32, bool) {
	return m.highest, m.loaded
}

// StartingAddress returns the lowest word address that has been loaded or
// written. The second result is false when the memory is empty.
func (m *Memory) StartingAddress() (uint32, bool) {
	return m.lowest, m.loaded
}

// WrittenAddresses returns every word-aligned address that has been
// written, in ascending order.
func (m *Memory) WrittenAddresses() []uint32 {
	addrs := make([]uint32, 0, len(m.words))
	for addr := range m.words {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
