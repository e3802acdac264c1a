// Package config loads section tables from YAML.
//
// A table file looks like:
//
//	is_64bit: false
//	byte_order: little
//	pointer_size_bits: 32
//	offset_size_bits: 32
//	section_count: 4
//	reserved_slot: true
//	sections:
//	  - name: .debug_abbrev
//	    hex: "01 11 01 25 0e ..."
//	  - name: .debug_info
//	    file: info.bin
//	    compression: zstd
//
// Section content comes from exactly one of hex or file; file paths are
// relative to the table file. compression selects how the store holds the
// content in memory.
package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/format"
	"github.com/arloliu/memdwarf/section"
)

// File is a parsed section table.
type File struct {
	Is64Bit         bool           `yaml:"is_64bit"`
	ByteOrder       string         `yaml:"byte_order"`
	PointerSizeBits uint           `yaml:"pointer_size_bits"`
	OffsetSizeBits  uint           `yaml:"offset_size_bits"`
	ObjectSize      uint64         `yaml:"object_size"`
	SectionCount    *int           `yaml:"section_count"`
	ReservedSlot    bool           `yaml:"reserved_slot"`
	Sections        []SectionEntry `yaml:"sections"`

	// baseDir resolves relative section file paths.
	baseDir string
}

// SectionEntry is one section of a table.
type SectionEntry struct {
	Name        string `yaml:"name"`
	Address     uint64 `yaml:"address"`
	Hex         string `yaml:"hex"`
	File        string `yaml:"file"`
	Compression string `yaml:"compression"`
}

// Load reads and parses the table file at path.
func Load(path string) (*File, error) {
	//nolint:gosec // G304: path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read section table: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.baseDir = filepath.Dir(path)

	return f, nil
}

// Parse parses a table. Relative file paths resolve against the working
// directory.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse section table: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (f *File) validate() error {
	if _, ok := format.ParseByteOrder(f.ByteOrder); !ok {
		return fmt.Errorf("%w: byte_order %q", errs.ErrInvalidOption, f.ByteOrder)
	}

	for i, s := range f.Sections {
		if s.Hex != "" && s.File != "" {
			return fmt.Errorf("%w: section %d %q sets both hex and file", errs.ErrInvalidOption, i, s.Name)
		}
		if _, ok := format.ParseCompressionType(s.Compression); !ok {
			return fmt.Errorf("%w: section %d %q compression %q", errs.ErrInvalidOption, i, s.Name, s.Compression)
		}
	}

	return nil
}

// NewStore builds a section store from the table.
func (f *File) NewStore() (*section.Store, error) {
	order, _ := format.ParseByteOrder(f.ByteOrder)

	opts := []section.StoreOption{
		section.WithByteOrder(order),
		section.With64Bit(f.Is64Bit),
		section.WithObjectSize(f.ObjectSize),
	}
	if f.PointerSizeBits != 0 {
		opts = append(opts, section.WithPointerSize(f.PointerSizeBits))
	}
	if f.OffsetSizeBits != 0 {
		opts = append(opts, section.WithOffsetSize(f.OffsetSizeBits))
	}
	if f.ReservedSlot {
		opts = append(opts, section.WithReservedSlot())
	}
	if f.SectionCount != nil {
		opts = append(opts, section.WithSectionCount(*f.SectionCount))
	}

	sections := make([]section.Section, 0, len(f.Sections))
	for i, entry := range f.Sections {
		sec, err := f.buildSection(entry)
		if err != nil {
			return nil, fmt.Errorf("section %d %q: %w", i, entry.Name, err)
		}
		sections = append(sections, sec)
	}

	return section.NewStore(sections, opts...)
}

func (f *File) buildSection(entry SectionEntry) (section.Section, error) {
	var content []byte
	var err error

	switch {
	case entry.Hex != "":
		content, err = DecodeHex(entry.Hex)
	case entry.File != "":
		path := entry.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.baseDir, path)
		}
		//nolint:gosec // G304: path is supplied by the section table.
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return section.Section{}, err
	}

	ct, _ := format.ParseCompressionType(entry.Compression)
	if ct == format.CompressionNone {
		return section.Section{Name: entry.Name, Address: entry.Address, Content: content}, nil
	}

	sec, err := section.Compressed(entry.Name, content, ct)
	if err != nil {
		return section.Section{}, err
	}
	sec.Address = entry.Address

	return sec, nil
}

// DecodeHex decodes a hex dump. Bytes may be separated by whitespace or
// commas and may carry a 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var b strings.Builder
	for _, field := range fields {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
		if len(field)%2 == 1 {
			field = "0" + field
		}
		b.WriteString(field)
	}

	out, err := hex.DecodeString(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: hex content: %w", errs.ErrInvalidOption, err)
	}

	return out, nil
}
