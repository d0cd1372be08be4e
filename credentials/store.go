package credentials

import "strings"

// Store resolves an access key to its full credential snapshot. It is the
// server-side counterpart of Provider, used when verifying inbound
// signatures.
type Store interface {
	Lookup(accessKey string) (Credentials, bool)
}

// StaticStore is an in-memory Store built from a fixed set of key pairs.
type StaticStore struct {
	creds map[string]Credentials
}

// NewStaticStore builds a StaticStore. Entries with a blank access or
// secret key are skipped.
func NewStaticStore(keys []Credentials) *StaticStore {
	m := make(map[string]Credentials, len(keys))
	for _, k := range keys {
		k.AccessKey = strings.TrimSpace(k.AccessKey)
		k.SecretKey = strings.TrimSpace(k.SecretKey)
		if !k.HasKeys() {
			continue
		}
		m[k.AccessKey] = k
	}
	return &StaticStore{creds: m}
}

// Lookup implements Store.
func (s *StaticStore) Lookup(accessKey string) (Credentials, bool) {
	if s == nil || s.creds == nil {
		return Credentials{}, false
	}
	c, ok := s.creds[accessKey]
	return c, ok
}
