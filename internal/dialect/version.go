package dialect

import "fmt"

// Version is a supported Lua language version.
type Version uint8

const (
	Lua51 Version = iota
	Lua52
	Lua53

	versionCount
)

// Default is used whenever configuration does not name a valid version.
const Default = Lua51

var versionNames = [versionCount]string{
	Lua51: "5.1",
	Lua52: "5.2",
	Lua53: "5.3",
}

func (v Version) String() string {
	if v < versionCount {
		return versionNames[v]
	}
	return "unknown"
}

func (v Version) GoString() string {
	return fmt.Sprintf("Version(%s)", v.String())
}

// Versions lists every supported version, oldest first.
func Versions() []Version {
	return []Version{Lua51, Lua52, Lua53}
}

// ParseVersion accepts "5.1", "5.2", "5.3" (an optional "lua" / "Lua " prefix is tolerated).
func ParseVersion(s string) (Version, bool) {
	switch trimLuaPrefix(s) {
	case "5.1":
		return Lua51, true
	case "5.2":
		return Lua52, true
	case "5.3":
		return Lua53, true
	default:
		return Default, false
	}
}

// VersionOrDefault parses s and falls back to Default on any invalid value.
func VersionOrDefault(s string) Version {
	v, _ := ParseVersion(s)
	return v
}

func trimLuaPrefix(s string) string {
	for _, p := range []string{"Lua ", "lua ", "Lua", "lua"} {
		if len(s) > len(p) && s[:len(p)] == p {
			return s[len(p):]
		}
	}
	return s
}

// HasGoto reports whether goto statements and ::labels:: exist.
func (v Version) HasGoto() bool { return v >= Lua52 }

// HasBitwise reports whether the integer division and bitwise operators exist.
func (v Version) HasBitwise() bool { return v >= Lua53 }

// HasExtendedEscapes reports whether \z, \x and \u{} string escapes exist.
func (v Version) HasExtendedEscapes() bool { return v >= Lua52 }
