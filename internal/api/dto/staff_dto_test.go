package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/orphanage-admin/internal/api/dto"
)

func TestUpdateStaffRequest_PhoneNumberTriState(t *testing.T) {
	t.Run("Should leave Set false when the key is omitted", func(t *testing.T) {
		var req dto.UpdateStaffRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name":"B"}`), &req))
		assert.False(t, req.PhoneNumber.Set)
		assert.Nil(t, req.PhoneNumber.Value)
	})

	t.Run("Should mark explicit null as set with nil value", func(t *testing.T) {
		var req dto.UpdateStaffRequest
		require.NoError(t, json.Unmarshal([]byte(`{"phone_number":null}`), &req))
		assert.True(t, req.PhoneNumber.Set)
		assert.Nil(t, req.PhoneNumber.Value)
	})

	t.Run("Should carry a provided value", func(t *testing.T) {
		var req dto.UpdateStaffRequest
		require.NoError(t, json.Unmarshal([]byte(`{"phone_number":"555-0100"}`), &req))
		assert.True(t, req.PhoneNumber.Set)
		require.NotNil(t, req.PhoneNumber.Value)
		assert.Equal(t, "555-0100", *req.PhoneNumber.Value)
	})
}
