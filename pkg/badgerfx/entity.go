package badgerfx

// Entity is a value stored by Repository under its own key, with secondary index keys pointing
// at that key.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string

	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
