package llm

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UpstreamError reports an unreachable completion endpoint or a reply
// without usable content. It surfaces as codes.Unavailable.
type UpstreamError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("status %d: %s", e.StatusCode, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("%s completion failed: %s", e.Provider, msg)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) GRPCStatus() *status.Status {
	return status.New(codes.Unavailable, e.Error())
}
