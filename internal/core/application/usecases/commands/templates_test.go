package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyActionPayload_RoundTrip(t *testing.T) {
	payload := commands.ReplyActionPayload(commands.ActionConfirm, "tn-1", "ord-1")
	assert.Equal(t, "CONFIRM_ORDER:tn-1:ord-1", payload)

	action, tenantID, orderID, ok := commands.ParseReplyActionPayload(payload)
	require.True(t, ok)
	assert.Equal(t, commands.ActionConfirm, action)
	assert.Equal(t, "tn-1", tenantID)
	assert.Equal(t, "ord-1", orderID)
}

func TestParseReplyActionPayload_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "free text", payload: "yes please"},
		{name: "empty", payload: ""},
		{name: "unknown action", payload: "SHIP_ORDER:tn-1:ord-1"},
		{name: "missing order", payload: "CONFIRM_ORDER:tn-1:"},
		{name: "too few parts", payload: "CONFIRM_ORDER:tn-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, ok := commands.ParseReplyActionPayload(tt.payload)
			assert.False(t, ok)
		})
	}
}
