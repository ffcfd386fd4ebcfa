package rsync

import (
	"regexp"
	"strconv"
)

// portMarkerPattern matches a non-standard port embedded before the '@' of a
// destination, e.g. "user.2222@host" or "user:2222@host".
var portMarkerPattern = regexp.MustCompile(`\w+([,.:])(\d+)@`)

// ResolvedHost is a destination with its port marker extracted.
type ResolvedHost struct {
	Host             string
	Port             int
	HasPort          bool
	ForceRemoteShell bool // set whenever HasPort is set
}

// ResolveHost detects a port marker in dest.
// Only the separator and digits of the first match are removed; the same
// digits appearing elsewhere in dest (a path, a hostname) are left alone.
// A destination without a marker is returned unchanged.
func ResolveHost(dest string) ResolvedHost {
	loc := portMarkerPattern.FindStringSubmatchIndex(dest)
	if loc == nil {
		return ResolvedHost{Host: dest}
	}

	sepStart, digitsStart, digitsEnd := loc[2], loc[4], loc[5]
	port, err := strconv.Atoi(dest[digitsStart:digitsEnd])
	if err != nil {
		// Digit run too long for a port; not a marker.
		return ResolvedHost{Host: dest}
	}

	return ResolvedHost{
		Host:             dest[:sepStart] + dest[digitsEnd:],
		Port:             port,
		HasPort:          true,
		ForceRemoteShell: true,
	}
}
