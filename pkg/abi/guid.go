// Package abi declares the binary contract of the plugin component-object
// model this host calls into: vtable-pointer interfaces, GUIDs, enums, and
// the POD structs a process call shares with a plugin. It is pure
// structural declaration plus thin cgo call wrappers — no business logic.
//
// This is the host-calling-in half of the ABI: it loads an externally
// compiled module (pkg/loader) and dispatches through its vtables.
package abi

import "fmt"

// GUID is a 16-byte component-object-model interface or class identifier.
type GUID [16]byte

// String renders a GUID as dash-separated hex, for logging plugin
// interface-query failures.
func (g GUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%04X-%012X",
		uint32(g[0])<<24|uint32(g[1])<<16|uint32(g[2])<<8|uint32(g[3]),
		uint16(g[4])<<8|uint16(g[5]),
		uint16(g[6])<<8|uint16(g[7]),
		uint16(g[8])<<8|uint16(g[9]),
		uint64(g[10])<<40|uint64(g[11])<<32|uint64(g[12])<<24|uint64(g[13])<<16|uint64(g[14])<<8|uint64(g[15]))
}

// Known interface IDs the host must recognize. Values mirror the
// Steinberg VST3 SDK's published TUIDs.
var (
	IIDFUnknown = GUID{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
	}
	IIDPluginFactory = GUID{
		0x7A, 0x4D, 0x81, 0x1C, 0x52, 0x11, 0x4A, 0x1F,
		0xAE, 0xD9, 0xD2, 0xEE, 0x0B, 0x43, 0xBF, 0x9F,
	}
	IIDPluginFactory2 = GUID{
		0x00, 0x07, 0xB6, 0x50, 0xF2, 0x4B, 0x4C, 0xBC,
		0xA4, 0xAF, 0x6A, 0xAE, 0x4A, 0x2A, 0xAF, 0x0B,
	}
	IIDPluginFactory3 = GUID{
		0x40, 0x4D, 0x2A, 0x00, 0xE4, 0x48, 0x49, 0x25,
		0x97, 0x3C, 0xC1, 0xE9, 0x3D, 0x9F, 0xF7, 0x60,
	}
	IIDComponent = GUID{
		0xE8, 0x31, 0xFF, 0x31, 0xF2, 0xD5, 0x4D, 0xC9,
		0xA3, 0xA7, 0xBA, 0x6E, 0xC4, 0x1C, 0x2D, 0x66,
	}
	IIDAudioProcessor = GUID{
		0x42, 0x04, 0x3F, 0x99, 0xB7, 0xDA, 0x45, 0x3C,
		0xA5, 0x69, 0xE7, 0x9D, 0x9A, 0xAE, 0xC3, 0x3D,
	}
	IIDEditController = GUID{
		0xDC, 0xD7, 0xBB, 0xE3, 0x7A, 0x86, 0x4F, 0x87,
		0x8A, 0xF9, 0x24, 0xC3, 0x00, 0xAA, 0x88, 0xA9,
	}
	IIDPlugView = GUID{
		0x5B, 0xC3, 0x22, 0x22, 0x40, 0xE1, 0x49, 0x6D,
		0x9F, 0x99, 0xBA, 0x2D, 0xC7, 0xB5, 0x8F, 0x03,
	}
	IIDConnectionPoint = GUID{
		0x70, 0xA4, 0x15, 0x6F, 0x6E, 0x6E, 0x46, 0xEC,
		0x98, 0x02, 0x0B, 0x89, 0x3F, 0x93, 0x81, 0x01,
	}
	IIDMessage = GUID{
		0x93, 0x6F, 0x53, 0x16, 0xCC, 0x59, 0x4E, 0x6F,
		0x84, 0xF8, 0x3C, 0x66, 0x6C, 0xC8, 0x9D, 0x71,
	}
	IIDHostApplication = GUID{
		0x58, 0xE5, 0x95, 0xCC, 0xDB, 0x2D, 0x4F, 0x7E,
		0xAC, 0x9E, 0xC1, 0x35, 0x00, 0x68, 0x6F, 0x7B,
	}
)
