package section

// Well-known debug section names.
const (
	DebugAbbrev     = ".debug_abbrev"
	DebugInfo       = ".debug_info"
	DebugTypes      = ".debug_types"
	DebugStr        = ".debug_str"
	DebugStrOffsets = ".debug_str_offsets"
	DebugLineStr    = ".debug_line_str"
	DebugAddr       = ".debug_addr"
	DebugLine       = ".debug_line"
)

// Defaults applied by NewStore.
const (
	DefaultPointerSizeBits = 32
	DefaultOffsetSizeBits  = 32
)
