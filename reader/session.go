package reader

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/memdwarf/endian"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/internal/options"
	"github.com/arloliu/memdwarf/objaccess"
	"github.com/arloliu/memdwarf/section"
)

// Session reads the units of one object through an objaccess.Access.
type Session struct {
	access objaccess.Access
	supp   objaccess.Access
	logger zerolog.Logger
	engine endian.EndianEngine

	// section name to index, first occurrence wins
	sections map[string]int
	loaded   map[int][]byte
	suppStr  []byte

	areas   [2]area
	abbrevs map[uint64]abbrevTable

	unit  *unit
	arena *arena
	gen   uint64

	poisoned error
	closed   bool
}

// area is the iteration state of .debug_info or .debug_types.
type area struct {
	name    string
	data    []byte
	present bool
	loaded  bool
	next    uint64
}

const (
	areaInfo  = 0
	areaTypes = 1
)

// Open validates access and starts a session over it.
//
// Parameters:
//   - access: Object access capability set
//   - opts: Session options (WithLogger, WithSupplementary)
//
// Returns:
//   - *Session: The opened session
//   - error: errs.ErrNoDebugInfo when neither .debug_info nor .debug_types
//     exists, or a SectionInfo failure
func Open(access objaccess.Access, opts ...Option) (*Session, error) {
	cfg := &sessionConfig{logger: zerolog.Nop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	s := &Session{
		access:   access,
		supp:     cfg.supplementary,
		logger:   cfg.logger,
		engine:   endian.GetEngine(access.ByteOrder()),
		sections: make(map[string]int),
		loaded:   make(map[int][]byte),
		abbrevs:  make(map[uint64]abbrevTable),
	}
	s.areas[areaInfo].name = section.DebugInfo
	s.areas[areaTypes].name = section.DebugTypes

	for i := 0; i < access.SectionCount(); i++ {
		info, err := access.SectionInfo(i)
		if err != nil {
			return nil, fmt.Errorf("section info %d: %w", i, err)
		}
		if info.Name == "" {
			continue
		}
		if _, dup := s.sections[info.Name]; dup {
			continue
		}
		s.sections[info.Name] = i

		s.logger.Debug().
			Int("index", i).
			Str("name", info.Name).
			Uint64("size", info.Size).
			Msg("section discovered")
	}

	for i := range s.areas {
		_, s.areas[i].present = s.sections[s.areas[i].name]
	}
	if !s.areas[areaInfo].present && !s.areas[areaTypes].present {
		return nil, fmt.Errorf("%w: neither %s nor %s present", errs.ErrNoDebugInfo, section.DebugInfo, section.DebugTypes)
	}

	return s, nil
}

// Finish releases the open unit and all cached state. Every later call on
// the session fails with errs.ErrSessionClosed. Finish is idempotent.
func (s *Session) Finish() {
	if s.closed {
		return
	}

	s.releaseUnit()
	s.loaded = nil
	s.abbrevs = nil
	s.sections = nil
	s.suppStr = nil
	s.closed = true

	s.logger.Debug().Msg("session finished")
}

// HasSection reports whether the object carries a section named name.
func (s *Session) HasSection(name string) bool {
	_, ok := s.sections[name]
	return ok
}

func (s *Session) usable() error {
	if s.closed {
		return errs.ErrSessionClosed
	}

	return s.poisoned
}

// section loads the named section. ok is false when the object has no
// section of that name.
func (s *Session) section(name string) ([]byte, bool, error) {
	index, ok := s.sections[name]
	if !ok {
		return nil, false, nil
	}

	if data, ok := s.loaded[index]; ok {
		return data, true, nil
	}

	data, err := loadSection(s.access, index)
	if err != nil {
		return nil, true, fmt.Errorf("load %s: %w", name, err)
	}
	s.loaded[index] = data

	return data, true, nil
}

// loadSection loads a section and applies relocations when the access
// supports them.
func loadSection(access objaccess.Access, index int) ([]byte, error) {
	data, err := access.LoadSection(index)
	if err != nil {
		return nil, err
	}

	if err := access.Relocate(index); err != nil && !errors.Is(err, errs.ErrUnsupportedCapability) {
		return nil, fmt.Errorf("relocate section %d: %w", index, err)
	}

	return data, nil
}

// supplementaryStrings returns the .debug_str of the supplementary object.
func (s *Session) supplementaryStrings() ([]byte, error) {
	if s.supp == nil {
		return nil, fmt.Errorf("%w: no supplementary object", errs.ErrNotFound)
	}
	if s.suppStr != nil {
		return s.suppStr, nil
	}

	for i := 0; i < s.supp.SectionCount(); i++ {
		info, err := s.supp.SectionInfo(i)
		if err != nil {
			return nil, err
		}
		if info.Name != section.DebugStr {
			continue
		}

		data, err := loadSection(s.supp, i)
		if err != nil {
			return nil, err
		}
		s.suppStr = data

		return data, nil
	}

	return nil, fmt.Errorf("%w: supplementary object has no %s", errs.ErrNotFound, section.DebugStr)
}
