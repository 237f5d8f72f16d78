package ar0144

// DefaultAddress is the sensor's 7-bit I2C address.
const DefaultAddress = 0x10

// Chip version register and the value an AR0144 answers with. Reading it is
// the only runtime check that the register tables below match the attached
// hardware.
const (
	regChipVersion uint16 = 0x3000
	chipVersionVal uint16 = 0x1356
)

// regEntry is one step of a configuration table.
type regEntry struct {
	addr uint16
	val  uint16
}

// regTable is an ordered register write sequence. Order matters: later
// entries rely on side effects of earlier ones (PLL lock before lane setup),
// so a table is always applied front to back and never reordered.
type regTable struct {
	name    string
	entries []regEntry
}

// Vendor recommended settings for the AT rev4 silicon, applied once after the
// chip identity has been verified.
var recommendedSettings = regTable{
	name: "recommended-settings",
	entries: []regEntry{
		{0x3ED6, 0x3CB5},
		{0x3ED8, 0x8765},
		{0x3EDA, 0x8888},
		{0x3EDC, 0x97FF},
		{0x3EF8, 0x6522},
		{0x3EFA, 0x2222},
		{0x3EFC, 0x6666},
		{0x3F00, 0xAA05},
		{0x3EE2, 0x180E},
		{0x3EE4, 0x0808},
		{0x3EEA, 0x2A09},
		{0x3060, 0x000D},
		{0x3092, 0x00CF},
		{0x3268, 0x0030},
		{0x3786, 0x0060},
		{0x3F4A, 0x0F70},
		{0x306E, 0x4810},
		{0x3064, 0x1802},
		{0x3EF6, 0x804D},
		{0x3180, 0xC08F},
		{0x30BA, 0x7623},
		{0x3176, 0x0480},
		{0x3178, 0x0480},
		{0x317A, 0x0480},
		{0x317C, 0x0480},
	},
}

// PLL configuration for a 27MHz input clock.
var pll27MHz = regTable{
	name: "pll-27mhz",
	entries: []regEntry{
		{0x302A, 0x0006},
		{0x302C, 0x0001},
		{0x302E, 0x0004},
		{0x3030, 0x0042},
		{0x3036, 0x000C},
		{0x3038, 0x0001},
	},
}

// MIPI CSI-2 serializer setup: 2 data lanes, 12 bits per pixel.
var mipi2Lane12Bit = regTable{
	name: "mipi-2lane-12bit",
	entries: []regEntry{
		{0x31AE, 0x0202},
		{0x31AC, 0x0C0C},
		{0x31B0, 0x0042},
		{0x31B2, 0x002E},
		{0x31B4, 0x1665},
		{0x31B6, 0x110E},
		{0x31B8, 0x2047},
		{0x31BA, 0x0105},
		{0x31BC, 0x0004},
	},
}

// Full resolution readout timing, 1280x800 at 60fps.
var mode1280x800x60 = regTable{
	name: "mode-1280x800-60fps",
	entries: []regEntry{
		{0x3002, 0x0000},
		{0x3004, 0x0004},
		{0x3006, 0x031F},
		{0x3008, 0x0503},
		{0x300A, 0x0339},
		{0x300C, 0x05D0},
		{0x3012, 0x0064},
		{0x30A2, 0x0001},
		{0x30A6, 0x0001},
		{0x3040, 0x0000},
	},
}

// Context B readout with 2x2 binning.
var contextB2x2Binning = regTable{
	name: "context-b-2x2-binning",
	entries: []regEntry{
		{0x3040, 0x1000},
		{0x30A8, 0x0003},
		{0x3040, 0x3000},
		{0x30AE, 0x0003},
	},
}

// Enables the embedded statistics rows in the output frame.
var embeddedDataStats = regTable{
	name: "embedded-data-stats",
	entries: []regEntry{
		{0x3064, 0x1982},
	},
}

var streamOn = regTable{
	name: "start-stream",
	entries: []regEntry{
		{0x3028, 0x0010},
		{0x301A, 0x005C},
	},
}

var streamOff = regTable{
	name: "stop-stream",
	entries: []regEntry{
		{0x301A, 0x0058},
	},
}
