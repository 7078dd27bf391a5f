package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Centavos
		wantErr bool
	}{
		{name: "whole amount", input: "125", want: 12500},
		{name: "two decimal places", input: "125.50", want: 12550},
		{name: "one decimal place", input: "125.5", want: 12550},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-3.25", want: -325},
		{name: "leading dot", input: ".75", want: 75},
		{name: "sub-centavo precision", input: "1.999", wantErr: true},
		{name: "garbage", input: "12a.50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentavos_String(t *testing.T) {
	assert.Equal(t, "125.50", Centavos(12550).String())
	assert.Equal(t, "0.05", Centavos(5).String())
	assert.Equal(t, "-3.25", Centavos(-325).String())
}

func TestCentavos_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Price Centavos `json:"price"`
	}

	t.Run("number input", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"price": 125.5}`), &p))
		assert.Equal(t, Centavos(12550), p.Price)
	})

	t.Run("string input", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"price": "99.00"}`), &p))
		assert.Equal(t, Centavos(9900), p.Price)
	})

	t.Run("marshal", func(t *testing.T) {
		out, err := json.Marshal(payload{Price: 12550})
		require.NoError(t, err)
		assert.JSONEq(t, `{"price": 125.50}`, string(out))
	})
}

func TestCentavos_Mul(t *testing.T) {
	// price 100.00 x 2 + price 50.00 x 1 = 250.00
	total := Centavos(10000).Mul(2) + Centavos(5000).Mul(1)
	assert.Equal(t, Centavos(25000), total)
}
