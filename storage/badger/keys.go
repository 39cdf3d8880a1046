package badger

import (
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/storage"
)

// Key prefixes for different data types
const (
	contentRecordPrefix = "usrcont"
	contentIDSeq        = "usrcontseq"
	forestRecordPrefix  = "usrfor"
	forestIDSeq         = "usrforseq"
)

// makeUserContentPrefix generates the key prefix covering all content
// records of one user.
// Format: prefix:userID:
func makeUserContentPrefix(userID string) []byte {
	return []byte(contentRecordPrefix + ":" + userID + ":")
}

// makeContentKey generates a key for a content record by user and ID.
// The ID is appended in BigEndian order so lexicographic sort matches
// insertion order.
func makeContentKey(userID string, id core.ID) []byte {
	prefix := makeUserContentPrefix(userID)
	return append(prefix, storage.MarshalID(id)...)
}

// makeUserForestPrefix generates the key prefix covering all forests of
// one user.
// Format: prefix:userID:
func makeUserForestPrefix(userID string) []byte {
	return []byte(forestRecordPrefix + ":" + userID + ":")
}

// makeForestKey generates a key for a forest record by user and ID.
func makeForestKey(userID string, id core.ID) []byte {
	prefix := makeUserForestPrefix(userID)
	return append(prefix, storage.MarshalID(id)...)
}
