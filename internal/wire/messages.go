package wire

// Control-plane request/response bodies (spec §6). Field names are the JSON
// wire names carried by the codec in codec.go.

type GetPositionRequest struct {
	NodeID int32 `json:"node_id"`
}

type GetPositionResponse struct {
	Status PositionStatus `json:"status"`
	X      float32        `json:"x"`
	Y      float32        `json:"y"`
	Z      float32        `json:"z"`
}

type AddNodeRequest struct {
	NodeID      int32   `json:"node_id"`
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	Z           float32 `json:"z"`
	BindAddress string  `json:"bind_address"`
}

type AddNodeResponse struct {
	Status NodeStatus `json:"status"`
}

type StartNetworkRequest struct {
	ClientID int32 `json:"client_id"`
}

type StartNetworkResponse struct {
	Status StartStatus `json:"status"`
	NNodes int32       `json:"n_nodes"`
}

type GetTargetGlobalPositionRequest struct {
	ClientID int32 `json:"client_id"`
}

type GetTargetGlobalPositionResponse struct {
	Status TargetStatus `json:"status"`
	X      float32      `json:"x"`
	Y      float32      `json:"y"`
	Z      float32      `json:"z"`
}

// ErrorPosition builds the literal +Inf, +Inf, +Inf sentinel reply mandated
// for every TS_ERROR response.
func ErrorPosition() (float32, float32, float32) {
	return ErrorSentinel, ErrorSentinel, ErrorSentinel
}
