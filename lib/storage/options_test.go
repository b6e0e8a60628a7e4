package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

type rawRecord string

func (r rawRecord) Serialize() ([]byte, error) {
	return []byte("raw:" + string(r)), nil
}

func TestDefaultListOptions(t *testing.T) {
	o := NewDefaultListOptions(false, nil, 0)
	require.Equal(t, "reverse=false", o.Encode())
	require.Equal(t, ListQueryTemplate, o.Template())

	cursor := []byte("poll-id-00000000000000000003")
	o.SetCursor(cursor).SetLimit(5).SetReverse(true)

	v := o.URLValues()
	require.Equal(t, "true", v.Get("reverse"))
	require.Equal(t, "5", v.Get("limit"))

	decoded, err := base64.URLEncoding.DecodeString(v.Get("cursor"))
	require.NoError(t, err)
	require.Equal(t, cursor, decoded)
}

func TestDefaultListOptionsCopy(t *testing.T) {
	o := NewDefaultListOptions(false, []byte("a"), 3)

	c := o.Copy()
	c.SetLimit(4).SetReverse(true)
	c.Cursor()[0] = 'b'

	require.Equal(t, uint64(3), o.Limit())
	require.False(t, o.Reverse())
	require.Equal(t, []byte("a"), o.Cursor())
	require.Equal(t, []byte("b"), c.Cursor())
}

func TestEncodeSerializable(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.New("raw", rawRecord("showme")))
	b, err := st.GetRaw("raw")
	require.NoError(t, err)
	require.Equal(t, "raw:showme", string(b))

	require.NoError(t, st.New("json", "showme"))
	b, err = st.GetRaw("json")
	require.NoError(t, err)
	require.Equal(t, `"showme"`, string(b))
}
