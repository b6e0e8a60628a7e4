package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

type Item struct {
	Key   string
	Value interface{}
}

// Serializable values are stored by their own encoding instead of
// `json.Marshal`.
type Serializable interface {
	Serialize() ([]byte, error)
}
