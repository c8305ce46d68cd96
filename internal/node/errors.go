package node

import "errors"

// ErrRegistrationRejected is returned by Register when the Network replies
// NS_ERROR (already active, or a duplicate id) — spec §4.5 requires the
// node terminate rather than start its router in that case.
var ErrRegistrationRejected = errors.New("node: registration rejected")
