package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// frame prepends a 4-byte big-endian length so a stream transport can split
// messages without depending on msgpack's own decoder to find the boundary
// (SPEC_FULL.md §6.7).
func frame(payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[4:], payload)
	return out
}

func unframe(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("protocol: frame too short (%d bytes)", len(b))
	}
	n := binary.BigEndian.Uint32(b)
	if uint32(len(b)-4) != n {
		return nil, fmt.Errorf("protocol: frame length mismatch: header says %d, got %d", n, len(b)-4)
	}
	return b[4:], nil
}

// EncodeNodeList serializes a NodeList for AddNodes' wire payload.
func EncodeNodeList(nl NodeList) ([]byte, error) {
	payload, err := msgpack.Marshal(&nl)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode NodeList: %w", err)
	}
	return frame(payload), nil
}

// DecodeNodeList is the host-facing inverse of EncodeNodeList; a decode
// failure is a batch-level DeserializationFailure (spec.md §7) — the caller
// must abort the whole batch rather than recover per-node.
func DecodeNodeList(b []byte) (NodeList, error) {
	payload, err := unframe(b)
	if err != nil {
		return NodeList{}, err
	}
	var nl NodeList
	if err := msgpack.Unmarshal(payload, &nl); err != nil {
		return NodeList{}, fmt.Errorf("protocol: decode NodeList: %w", err)
	}
	return nl, nil
}

// EncodeChangedResponse serializes a ChangedResponse for the external
// interface's return value.
func EncodeChangedResponse(r ChangedResponse) ([]byte, error) {
	payload, err := msgpack.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode ChangedResponse: %w", err)
	}
	return frame(payload), nil
}

// DecodeChangedResponse is the inverse of EncodeChangedResponse, provided
// for hosts/tests that want to round-trip a response.
func DecodeChangedResponse(b []byte) (ChangedResponse, error) {
	payload, err := unframe(b)
	if err != nil {
		return ChangedResponse{}, err
	}
	var r ChangedResponse
	if err := msgpack.Unmarshal(payload, &r); err != nil {
		return ChangedResponse{}, fmt.Errorf("protocol: decode ChangedResponse: %w", err)
	}
	return r, nil
}
