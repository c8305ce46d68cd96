package transport

// Data-plane frames (spec §6, §9). The dealer/router identity addressing
// that ZeroMQ's ROUTER socket would carry as a frame is instead carried by
// which websocket connection a frame arrives on — the dealer dials one
// connection per node and keys its replies by that connection, so no
// sender-identity frame is needed on the wire (see DESIGN.md's
// internal/transport entry).

// getDistanceFrame is the literal payload Network sends to a Node.
type getDistanceFrame struct {
	Type string `json:"type"`
}

// distanceFrame is the payload a Node sends back.
type distanceFrame struct {
	Distance float64 `json:"distance"`
}

const getDistanceType = "get_distance"
