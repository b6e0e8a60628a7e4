package common

import (
	"fmt"
	"sort"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func TestSequentialUUIDWithSatori(t *testing.T) {
	var ids []string
	for i := 0; i < 10000; i++ {
		ids = append(ids, GetUniqueIDFromUUID())
	}

	sortedIds := make([]string, len(ids))
	copy(sortedIds, ids)
	sort.Strings(sortedIds)

	for i, id := range ids {
		require.Equal(t, sortedIds[i], id, "failed to make sequential id thru `satori/go-uuid`")
	}
}

func TestInStringArray(t *testing.T) {
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(
			ids,
			fmt.Sprintf("%s-%s", uuid.Must(uuid.NewV1(), nil).String(), uuid.Must(uuid.NewV1(), nil).String()),
		)
	}

	for i, id := range ids {
		index, found := InStringArray(ids, id)
		require.True(t, found)
		require.Equal(t, i, index)
	}

	index, found := InStringArray(ids, "findme")
	require.False(t, found)
	require.Equal(t, -1, index)
}

func TestJSONMarshalWithoutEscapeHTML(t *testing.T) {
	b, err := JSONMarshalWithoutEscapeHTML(map[string]string{"description": "<coffee> & tea"})
	require.NoError(t, err)
	require.Equal(t, `{"description":"<coffee> & tea"}`, string(b))
}

func TestEncodeUint64LittleEndian(t *testing.T) {
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, EncodeUint64LittleEndian(1))
	require.Equal(t, []byte{0, 1, 0, 0, 0, 0, 0, 0}, EncodeUint64LittleEndian(256))
}

func TestGetENVValue(t *testing.T) {
	key := "POLLCHAIN_TEST_" + GetUniqueIDFromUUID()
	require.Equal(t, "default", GetENVValue(key, "default"))
}
