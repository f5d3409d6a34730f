package model_test

import (
	"testing"

	"hotelier/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	Number string `json:"number"`
	Price  int64  `json:"price"`
}

func TestJSON_ValueAndScan(t *testing.T) {
	column := model.NewJSON([]line{{Number: "101", Price: 2500}})

	value, err := column.Value()
	require.NoError(t, err)

	var scanned model.JSON[[]line]
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, column.V, scanned.V)

	require.NoError(t, scanned.Scan(`[{"number":"102","price":10}]`))
	assert.Equal(t, "102", scanned.V[0].Number)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned.V)

	assert.Error(t, scanned.Scan(42))
}

func TestJSON_MarshalsAsInnerValue(t *testing.T) {
	column := model.NewJSON(map[string]string{"booked": "2025-01-01T00:00:00Z"})

	raw, err := column.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"booked":"2025-01-01T00:00:00Z"}`, string(raw))
}
