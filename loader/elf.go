// Package loader provides program loading for MIPS32 executables and
// plain word listings.
package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/mipssim/emu"
)

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// Segment represents a loadable segment of a program.
type Segment struct {
	// VirtAddr is the address where this segment should be loaded.
	VirtAddr uint32
	// Data contains the segment contents from the file.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint32
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// Program represents a loaded program ready for execution.
type Program struct {
	// EntryPoint is the address where execution should begin.
	EntryPoint uint32
	// Segments contains all loadable segments.
	Segments []Segment
}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Load reads a program from path. ELF files are parsed as MIPS32
// executables; anything else is parsed as a word listing.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program: %w", err)
	}
	defer func() { _ = f.Close() }()

	magic := make([]byte, len(elfMagic))
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	if n == len(elfMagic) && bytes.Equal(magic, elfMagic) {
		return LoadELF(path)
	}

	return LoadHex(path)
}

// LoadELF parses a big-endian MIPS32 ELF executable.
func LoadELF(path string) (*Program, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file")
	}

	if f.Machine != elf.EM_MIPS {
		return nil, fmt.Errorf("not a MIPS ELF file (machine type: %v)", f.Machine)
	}

	if f.Data != elf.ELFDATA2MSB {
		return nil, fmt.Errorf("not a big-endian ELF file")
	}

	prog := &Program{
		EntryPoint: uint32(f.Entry),
	}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		var flags SegmentFlags
		if phdr.Flags&elf.PF_X != 0 {
			flags |= SegmentFlagExecute
		}
		if phdr.Flags&elf.PF_W != 0 {
			flags |= SegmentFlagWrite
		}
		if phdr.Flags&elf.PF_R != 0 {
			flags |= SegmentFlagRead
		}

		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: uint32(phdr.Vaddr),
			Data:     data,
			MemSize:  uint32(phdr.Memsz),
			Flags:    flags,
		})
	}

	return prog, nil
}

// LoadInto copies executable segments into the instruction memory and all
// other segments into the data memory, zero-filling BSS.
func (p *Program) LoadInto(iMem, dMem *emu.Memory) error {
	for _, seg := range p.Segments {
		target := dMem
		if seg.Flags&SegmentFlagExecute != 0 {
			target = iMem
		}

		if err := target.LoadBytes(seg.VirtAddr, seg.Data); err != nil {
			return fmt.Errorf("failed to load segment at 0x%08X: %w", seg.VirtAddr, err)
		}

		if seg.MemSize > uint32(len(seg.Data)) {
			bss := make([]byte, seg.MemSize-uint32(len(seg.Data)))
			addr := seg.VirtAddr + uint32(len(seg.Data))
			if err := target.LoadBytes(addr, bss); err != nil {
				return fmt.Errorf("failed to zero-fill segment at 0x%08X: %w", addr, err)
			}
		}
	}

	return nil
}
