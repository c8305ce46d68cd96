package wire

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is registered as a grpc/encoding.Codec and forced on both the
// client and server sides (see ServerOptions/DialOptions in tracing.go). The
// control-plane messages in this package are plain Go structs rather than
// protoc-generated types — see DESIGN.md's internal/wire entry for why — so
// the codec marshals them as JSON instead of the protobuf wire format while
// still riding grpc's real HTTP/2 transport, streaming, and interceptor
// stack.
const CodecName = "multilat-json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}
