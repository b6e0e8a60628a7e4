package common

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"net/url"
	"os"

	uuid "github.com/satori/go.uuid"
)

const MaxUintEncodeByte = 8

func GetUniqueIDFromUUID() string {
	return uuid.Must(uuid.NewV1(), nil).String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func GetUrlQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}

//
// Function to wrap calls to `json.Unmarshall` that cannot fail
//
// This function should only be used when reading records from the on-disk
// storage which were serialized by the ledger itself.
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

// JSONMarshalWithoutEscapeHTML keeps `<`, `>` and `&` of poll descriptions
// as they are.
func JSONMarshalWithoutEscapeHTML(o interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(o); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeUint64LittleEndian is the seed encoding of numeric identifiers used
// for address derivation.
func EncodeUint64LittleEndian(i uint64) []byte {
	b := make([]byte, MaxUintEncodeByte)
	binary.LittleEndian.PutUint64(b, i)
	return b
}
