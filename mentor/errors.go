package mentor

import (
	"fmt"

	"google.golang.org/grpc/status"
)

// TurnError reports a chat turn whose completion failed. The user message and
// an error notice were recorded on ConversationID before it was returned.
type TurnError struct {
	ConversationID string
	Err            error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("chat turn on conversation %s failed: %v", e.ConversationID, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// GRPCStatus keeps the status code of the underlying failure.
func (e *TurnError) GRPCStatus() *status.Status {
	s := status.Convert(e.Err)
	return status.New(s.Code(), e.Error())
}
