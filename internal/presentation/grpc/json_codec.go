package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// The service speaks JSON-encoded messages over gRPC instead of
// protobuf; the codec is registered under this name and selected by
// clients via grpc.CallContentSubtype.
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

var _ encoding.Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", v, err)
	}
	return nil
}
