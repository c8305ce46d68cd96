package target

import "errors"

// ErrMalformedTrajectory is returned by LoadTrajectory when the waypoint
// document is missing coordinates or contains non-numeric entries (spec
// §4.6, §7). It is fatal: the process must exit before serving.
var ErrMalformedTrajectory = errors.New("target: malformed trajectory")
