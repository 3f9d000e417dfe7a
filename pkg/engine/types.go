package engine

// SampleFormat is the wire format a device reports support for.
type SampleFormat int

const (
	FormatI8 SampleFormat = iota
	FormatU8
	FormatI16
	FormatU16
	FormatI32
	FormatU32
	FormatF32
)

func (f SampleFormat) String() string {
	switch f {
	case FormatI8:
		return "i8"
	case FormatU8:
		return "u8"
	case FormatI16:
		return "i16"
	case FormatU16:
		return "u16"
	case FormatI32:
		return "i32"
	case FormatU32:
		return "u32"
	case FormatF32:
		return "f32"
	default:
		return "unknown"
	}
}

// ConfigRange is one device-advertised supported configuration range.
type ConfigRange struct {
	Format       SampleFormat
	Channels     int
	MinSampleHz  uint32
	MaxSampleHz  uint32
	MinBufferLen uint32 // 0 means unconstrained
	MaxBufferLen uint32 // 0 means unconstrained
}

// bufferSizeMatches reports whether bufferLen satisfies this range, treating a
// zero Min/Max pair as "unknown" (always satisfied) per the format
// selection algorithm's rule 2.
func (r ConfigRange) bufferSizeMatches(bufferLen uint32) bool {
	if r.MinBufferLen == 0 && r.MaxBufferLen == 0 {
		return true
	}
	return bufferLen >= r.MinBufferLen && bufferLen <= r.MaxBufferLen
}

// Device is one capture or playback endpoint under a backend.
type Device struct {
	ID      string
	Name    string
	IsInput bool
	Ranges  []ConfigRange
}

// StreamConfig is a chosen concrete format for an active stream.
type StreamConfig struct {
	Format     SampleFormat
	Channels   int
	SampleRate uint32
	BufferSize uint32
}

// Backend is one platform driver family (e.g. WASAPI, ALSA, CoreAudio)
// and its enumerated devices, cached at construction and refreshed on
// selection rather than re-queried on every enumeration call.
type Backend struct {
	Name    string
	Inputs  []Device
	Outputs []Device
	// Exclusive marks backends where capture and playback must share a
	// device (engine §4.G.2); WASAPI loopback-style shared-mode
	// backends are the common real-world case.
	Exclusive bool
}
