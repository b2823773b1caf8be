package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roothash-pay/auditBounty/core/state"
	"github.com/roothash-pay/auditBounty/storage"
)

func newManager(t *testing.T) *state.Manager {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(func() { _ = db.Close() })
	return state.NewManager(db)
}

func TestKVRoundTrip(t *testing.T) {
	m := newManager(t)

	type record struct {
		Symbol    string
		Supported bool
		Amount    *big.Int
	}
	in := &record{Symbol: "BTY", Supported: true, Amount: big.NewInt(42)}
	require.NoError(t, m.KVPut([]byte("test/record"), in))

	out := new(record)
	found, err := m.KVGet([]byte("test/record"), out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "BTY", out.Symbol)
	require.True(t, out.Supported)
	require.Zero(t, out.Amount.Cmp(big.NewInt(42)))

	found, err = m.KVGet([]byte("test/missing"), out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestKVAppendDeduplicatesAndPreservesOrder(t *testing.T) {
	m := newManager(t)
	key := []byte("test/index")

	for _, v := range []string{"AAA", "BBB", "AAA", "CCC"} {
		require.NoError(t, m.KVAppend(key, []byte(v)))
	}
	var out [][]byte
	require.NoError(t, m.KVGetList(key, &out))
	require.Len(t, out, 3)
	require.Equal(t, "AAA", string(out[0]))
	require.Equal(t, "BBB", string(out[1]))
	require.Equal(t, "CCC", string(out[2]))
}

func TestKVGetListEmptyInitialisesSlice(t *testing.T) {
	m := newManager(t)
	var out [][]byte
	require.NoError(t, m.KVGetList([]byte("test/none"), &out))
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestRoleMembership(t *testing.T) {
	m := newManager(t)
	alice := []byte{0x01, 0x02}
	bob := []byte{0x03, 0x04}

	require.False(t, m.HasRole("ROLE_ADMIN", alice))
	require.NoError(t, m.GrantRole("ROLE_ADMIN", alice))
	require.NoError(t, m.GrantRole("ROLE_ADMIN", alice)) // idempotent
	require.NoError(t, m.GrantRole("ROLE_ADMIN", bob))
	require.True(t, m.HasRole("ROLE_ADMIN", alice))
	require.True(t, m.HasRole("ROLE_ADMIN", bob))

	members, err := m.RoleMembers("ROLE_ADMIN")
	require.NoError(t, err)
	require.Len(t, members, 2)

	require.NoError(t, m.RevokeRole("ROLE_ADMIN", alice))
	require.False(t, m.HasRole("ROLE_ADMIN", alice))
	require.True(t, m.HasRole("ROLE_ADMIN", bob))

	// Revoking a role never held is a no-op.
	require.NoError(t, m.RevokeRole("ROLE_ADMIN", alice))
}

func TestPauseFlags(t *testing.T) {
	m := newManager(t)

	require.False(t, m.IsPaused("bounty"))
	require.NoError(t, m.SetPaused("bounty", true))
	require.True(t, m.IsPaused("bounty"))
	require.False(t, m.IsPaused("other"))
	require.NoError(t, m.SetPaused("bounty", false))
	require.False(t, m.IsPaused("bounty"))
}
