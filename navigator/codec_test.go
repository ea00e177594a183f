package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCodec_RoundTrip(t *testing.T) {
	type screen struct {
		Name string `json:"name"`
		Tab  int    `json:"tab"`
	}
	in := []HistoryEntry[screen]{
		NewEntry(screen{Name: "home"}, Depth(0)),
		NewEntry(screen{Name: "detail", Tab: 2}, Depth(1)),
		NewEntry(screen{Name: "modal"}, nil),
	}

	data, err := EncodeHistory(in)
	require.NoError(t, err)

	out, err := DecodeHistory[screen](data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeHistory_RejectsGarbage(t *testing.T) {
	_, err := DecodeHistory[int]([]byte("garbage"))
	assert.Error(t, err)

	_, err = DecodeHistory[int]([]byte(`{"depth":1}`))
	assert.Error(t, err, "non-array payloads are rejected")

	_, err = DecodeHistory[int]([]byte(`[{"depth":null,"value":"text"}]`))
	assert.Error(t, err, "value type mismatch is rejected")
}

func TestDecodeHistory_EmptyArrayIsEmptyNotError(t *testing.T) {
	out, err := DecodeHistory[int]([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, out)
}
