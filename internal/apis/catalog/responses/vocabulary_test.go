package responses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNames_DropsMalformedEntries(t *testing.T) {
	names, err := ParseNames([]byte(`[{"name":"BEST"}, {"notname":"x"}, "rawstring"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"BEST"}, names)
}

func TestParseNames_ResultsEnvelope(t *testing.T) {
	names, err := ParseNames([]byte(`{"count":3,"results":[{"id":1,"name":"1+1"},{"name":""},{"name":7},{"name":"2+1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"1+1", "2+1"}, names)
}

func TestParseNames_ObjectWithoutResults(t *testing.T) {
	names, err := ParseNames([]byte(`{"detail":"nothing here"}`))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParseNames_NotJSON(t *testing.T) {
	_, err := ParseNames([]byte(`nope`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
