package codec

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germarr/static-worldcup/models"
)

func sampleState() *models.PickState {
	return &models.PickState{
		GroupPicks: map[int]models.Outcome{
			1: models.OutcomeHome,
			2: models.OutcomeDraw,
			7: models.OutcomeAway,
		},
		KnockoutPicks: map[string]int{
			"r32-1": 4,
			"sf-2":  19,
			"tp-1":  33,
		},
		ThirdPlaceOrder: []int{9, 3, 12, 5},
		StandingsOrder: map[string]map[string][]int{
			"A": {"6:2": {2, 1}},
			"C": {"4:0": {11, 10, 12}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	state := sampleState()

	token, err := Encode(state)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, state.GroupPicks, decoded.GroupPicks)
	assert.Equal(t, state.KnockoutPicks, decoded.KnockoutPicks)
	assert.Equal(t, state.ThirdPlaceOrder, decoded.ThirdPlaceOrder)
	assert.Equal(t, state.StandingsOrder, decoded.StandingsOrder)
}

func TestTokenIsURLSafe(t *testing.T) {
	token, err := Encode(sampleState())
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestEncodeNilStateYieldsEmptyState(t *testing.T) {
	token, err := Encode(nil)
	require.NoError(t, err)

	decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Empty(t, decoded.GroupPicks)
	assert.Empty(t, decoded.KnockoutPicks)
	assert.Empty(t, decoded.ThirdPlaceOrder)
	assert.Empty(t, decoded.StandingsOrder)
}

func TestDecodeNormalizesMissingFields(t *testing.T) {
	// A token carrying only group picks: the other fields come back empty,
	// never nil. This is the only schema-evolution mechanism the token has.
	token := deflateToken(t, `{"g":{"4":"home"}}`)

	state, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeHome, state.GroupPicks[4])
	assert.NotNil(t, state.KnockoutPicks)
	assert.NotNil(t, state.StandingsOrder)
}

func TestDecodeFailures(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"invalid base64", "not~valid~base64!"},
		{"corrupt stream", base64.RawURLEncoding.EncodeToString([]byte("not deflate data"))},
		{"non-object json", deflateToken(t, `[1,2,3]`)},
		{"null json", deflateToken(t, `null`)},
		{"truncated json", deflateToken(t, `{"g":`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := Decode(tc.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, state)
		})
	}
}

func TestDecodeFailureLeavesCallerStateAlone(t *testing.T) {
	prior := sampleState()
	_, err := Decode("!!!not a token!!!")
	require.Error(t, err)

	// The failure is a value, not a side effect: whatever the caller already
	// displays is untouched.
	assert.Equal(t, sampleState(), prior)
}

func TestDecodeAcceptsPaddedToken(t *testing.T) {
	token, err := Encode(sampleState())
	require.NoError(t, err)

	decoded, err := Decode(token + "==")
	require.NoError(t, err)
	assert.Equal(t, sampleState().GroupPicks, decoded.GroupPicks)
}

func deflateToken(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}
