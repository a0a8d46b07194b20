package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// adNamespace seeds the deterministic ad_id derived from the composite key.
var adNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("jobadsminer/ad"))

// AdKey is the composite identity of an advertisement.
type AdKey struct {
	SourceFile string
	MessageIDs string
	GroupIndex int
	DateTitle  string
}

// String renders the key as source_file|message_ids|group_index|date_title.
func (k AdKey) String() string {
	return JoinKey(k.SourceFile, k.MessageIDs, strconv.Itoa(k.GroupIndex), k.DateTitle)
}

// ID returns a UUIDv5 derived from the textual key; equal keys give equal ids.
func (k AdKey) ID() uuid.UUID {
	return uuid.NewSHA1(adNamespace, []byte(k.String()))
}

// JoinKey joins key parts with "|".
func JoinKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// MessageGroup is one default message plus the joined messages that follow it.
type MessageGroup struct {
	SourceFile string
	GroupIndex int
	MessageIDs []string
	DateTitle  string
	FromName   string
	Text       string
}

// AdRecord is one advertisement extracted from a message group. Empty strings mean absent.
type AdRecord struct {
	Key            AdKey
	FromName       string
	RawText        string
	NormalizedText string
	RawJobTitle    string
	JobTitleNorm   string
	Company        string
	RawLocation    string
	RawEducation   string
	RawExperience  string
}
