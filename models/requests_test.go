package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSettlementRequest_NormalizeAliases(t *testing.T) {
	var req RecordSettlementRequest
	require.NoError(t, json.Unmarshal([]byte(`{"to_user_id":"bob","amount":25}`), &req))
	req.Normalize()
	assert.Equal(t, "bob", req.ToUserID)

	// The camelCase spelling wins when both are present.
	req = RecordSettlementRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"toUserId":"bob","to_user_id":"carol"}`), &req))
	req.Normalize()
	assert.Equal(t, "bob", req.ToUserID)
}

func TestRejectSettlementRequest_NormalizeAliases(t *testing.T) {
	var req RejectSettlementRequest
	require.NoError(t, json.Unmarshal([]byte(`{"rejected_reason":"wrong amount"}`), &req))
	req.Normalize()
	assert.Equal(t, "wrong amount", req.Reason)
}

func TestCreateExpenseRequest_NormalizeAliases(t *testing.T) {
	body := `{
		"description": "dinner",
		"amount": 60,
		"paid_by": "alice",
		"splits": [
			{"user_id": "alice", "share_amount": 30},
			{"userId": "bob", "shareAmount": 30}
		]
	}`

	var req CreateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	req.Normalize()

	assert.Equal(t, "alice", req.PaidBy)
	require.Len(t, req.Splits, 2)
	assert.Equal(t, "alice", req.Splits[0].UserID)
	assert.Equal(t, 30.0, req.Splits[0].ShareAmount)
	assert.Equal(t, "bob", req.Splits[1].UserID)
	assert.Equal(t, 30.0, req.Splits[1].ShareAmount)
}

func TestUpdateExpenseRequest_NormalizeAliases(t *testing.T) {
	var req UpdateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount":10,"splits":[{"user_id":"x","share_amount":10}]}`), &req))
	req.Normalize()

	require.Len(t, req.Splits, 1)
	assert.Equal(t, "x", req.Splits[0].UserID)
	assert.Equal(t, 10.0, req.Splits[0].ShareAmount)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	req := RecordSettlementRequest{ToUserIDSnake: "bob", Amount: 5}
	req.Normalize()
	req.Normalize()
	assert.Equal(t, "bob", req.ToUserID)
}
