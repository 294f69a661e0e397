package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadHex reads a word listing and returns it as a single executable
// segment at address 0.
func LoadHex(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word listing: %w", err)
	}
	defer func() { _ = f.Close() }()

	words, err := ParseHex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return FromWords(0, words), nil
}

// FromWords builds a program whose only segment holds words at base.
func FromWords(base uint32, words []uint32) *Program {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(data[i*4:], w)
	}

	return &Program{
		EntryPoint: base,
		Segments: []Segment{{
			VirtAddr: base,
			Data:     data,
			MemSize:  uint32(len(data)),
			Flags:    SegmentFlagExecute | SegmentFlagRead,
		}},
	}
}

// ParseHex parses one instruction word per line. A word is either 32
// binary digits or a hexadecimal number with an optional 0x prefix.
// Blank lines and text after '#' or "//" are ignored.
func ParseHex(r io.Reader) ([]uint32, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		word, err := parseWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word listing: %w", err)
	}

	return words, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func parseWord(s string) (uint32, error) {
	if len(s) == 32 && strings.Trim(s, "01") == "" {
		v, err := strconv.ParseUint(s, 2, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid binary word %q: %w", s, err)
		}
		return uint32(v), nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex word %q: %w", s, err)
	}
	return uint32(v), nil
}
