package resource

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
	"boscoin.io/pollchain/lib/transaction"
)

func toMap(t *testing.T, r Resource) map[string]interface{} {
	j, err := json.MarshalIndent(r.Resource(), "", " ")
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(j, &m)
	return m
}

func TestResourcePollAndBallot(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	creator := keypair.Random()
	p, err := poll.Create(st, 3, "Coffee or tea?", creator.Address(), time.Now())
	require.NoError(t, err)

	voter := keypair.Random()
	b, p, err := ballot.Cast(st, p.Address, voter.Address(), true)
	require.NoError(t, err)

	{
		m := toMap(t, NewPoll(p))
		require.Equal(t, float64(3), m["id"])
		require.Equal(t, p.Address.String(), m["address"])
		require.Equal(t, "Coffee or tea?", m["description"])
		require.Equal(t, creator.Address(), m["creator"])
		require.Equal(t, float64(1), m["yes_votes"])
		require.Equal(t, float64(0), m["no_votes"])
		require.Equal(t, true, m["is_active"])

		l := m["_links"].(map[string]interface{})
		require.Equal(t, strings.Replace(URLPoll, "{id}", p.Address.String(), -1), l["self"].(map[string]interface{})["href"])
		require.Contains(t, l["ballots"].(map[string]interface{})["href"], "/ballots{?cursor,limit,reverse}")
	}

	{
		m := toMap(t, NewBallot(b))
		require.Equal(t, b.Address.String(), m["address"])
		require.Equal(t, p.Address.String(), m["poll"])
		require.Equal(t, voter.Address(), m["voter"])
		require.Equal(t, true, m["option"])

		l := m["_links"].(map[string]interface{})
		require.Equal(t, strings.Replace(URLBallot, "{id}", b.Address.String(), -1), l["self"].(map[string]interface{})["href"])
		require.Equal(t, strings.Replace(URLPoll, "{id}", p.Address.String(), -1), l["poll"].(map[string]interface{})["href"])
	}
}

func TestResourceReceipt(t *testing.T) {
	_, tx := transaction.TestMakeTransaction([]byte{0x00}, 2)
	receipt := transaction.NewReceipt(tx, common.NowISO8601())

	m := toMap(t, NewReceipt(receipt))
	require.Equal(t, tx.H.Hash, m["hash"])
	require.Equal(t, tx.B.Source, m["source"])
	require.Equal(t, 2, len(m["operations"].([]interface{})))
	require.Equal(t, 2, len(m["targets"].([]interface{})))
}

func TestResourceList(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	var rs []Resource
	for i := uint64(0); i < 3; i++ {
		p, err := poll.Create(st, i, "Coffee or tea?", keypair.Random().Address(), time.Now())
		require.NoError(t, err)
		rs = append(rs, NewPoll(p))
	}

	l := NewResourceList(rs, URLPolls, URLPolls+"?cursor=b", "", URLPolls+storage.ListQueryTemplate)
	j, err := json.Marshal(l.Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(j, &m)

	records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 3, len(records))
	require.Equal(t, float64(3), m["count"])

	links := m["_links"].(map[string]interface{})
	require.Equal(t, URLPolls+"?cursor=b", links["next"].(map[string]interface{})["href"])
	_, found := links["prev"]
	require.False(t, found)

	page := links["page"].(map[string]interface{})
	require.Equal(t, URLPolls+"{?cursor,limit,reverse}", page["href"])
	require.Equal(t, true, page["templated"])
}

func TestResourceListEmpty(t *testing.T) {
	l := NewResourceList(nil, URLPolls, "", "", "")
	j, err := json.Marshal(l.Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(j, &m)

	require.Equal(t, float64(0), m["count"])
	require.Equal(t, 0, len(m["_embedded"].(map[string]interface{})["records"].([]interface{})))

	links := m["_links"].(map[string]interface{})
	require.Equal(t, URLPolls, links["self"].(map[string]interface{})["href"])
	for _, rel := range []string{"next", "prev", "page"} {
		_, found := links[rel]
		require.False(t, found, rel)
	}
}
