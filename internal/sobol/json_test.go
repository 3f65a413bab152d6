package sobol

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateJSONNonFinite(t *testing.T) {
	in := Estimate{
		FirstOrder:  []float64{0.5, math.NaN()},
		SecondOrder: []float64{math.Inf(1)},
		ThirdOrder:  []float64{},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_order":[0.5,null],"second_order":[null],"third_order":[]}`, string(b))

	var out Estimate
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, 0.5, out.FirstOrder[0])
	assert.True(t, math.IsNaN(out.FirstOrder[1]))
	assert.True(t, math.IsNaN(out.SecondOrder[0]))
	assert.Empty(t, out.ThirdOrder)
	assert.NotNil(t, out.ThirdOrder)
}
