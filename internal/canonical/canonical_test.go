package canonical

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortsMapKeys(t *testing.T) {
	out, err := Marshal(map[string]any{"zeta": 1, "alpha": 2, "mid": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(out))
}

func TestMarshalPreservesNumericLiterals(t *testing.T) {
	out, err := Marshal(map[string]any{"rate": 6.5, "score": 720, "dti": 0.28})
	require.NoError(t, err)
	assert.Equal(t, `{"dti":0.28,"rate":6.5,"score":720}`, string(out))
}

func TestHashIsOrderIndependent(t *testing.T) {
	a := map[string]any{"credit_score": 720, "annual_income": 85000}
	b := map[string]any{"annual_income": 85000, "credit_score": 720}

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.False(t, ha.IsZero())
}

func TestHashDiffersOnContent(t *testing.T) {
	ha, err := Hash(map[string]any{"recommendation": "APPROVE"})
	require.NoError(t, err)
	hb, err := Hash(map[string]any{"recommendation": "DECLINE"})
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
}

func TestHashStringMatchesSHA256(t *testing.T) {
	want := sha256.Sum256([]byte("xmtp_credit_thread_001"))
	got := HashString("xmtp_credit_thread_001")
	assert.Equal(t, want[:], got[:])
}

func TestMarshalRejectsUnserializable(t *testing.T) {
	_, err := Marshal(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}
