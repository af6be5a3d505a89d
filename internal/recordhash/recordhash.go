// Package recordhash computes the content digest used to detect external
// edits to database rows between runs.
package recordhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

// hashField is the one column excluded from its own digest.
const hashField = "RecordHash"

// fieldSeparator joins the rendered name=value pairs. A unit separator never
// appears in version strings, URLs or serialized dependency lists.
const fieldSeparator = "\x1f"

// Hash renders every field of the record except RecordHash as "name=value",
// sorts the pairs lexicographically and returns the lowercase hex SHA-256 of
// the joined UTF-8 bytes. Field declaration order is irrelevant; absent
// optional fields render as empty strings.
func Hash(record models.ModRecord) string {
	pairs := fieldPairs(record)
	sort.Strings(pairs)

	digest := sha256.Sum256([]byte(strings.Join(pairs, fieldSeparator)))
	return hex.EncodeToString(digest[:])
}

// Verify recomputes the digest and compares it with the stored one. A record
// with no stored hash has never been validated and verifies false.
func Verify(record models.ModRecord) bool {
	if record.RecordHash == "" {
		return false
	}
	return Hash(record) == record.RecordHash
}

// Assign stamps the record with its own digest.
func Assign(record *models.ModRecord) {
	record.RecordHash = Hash(*record)
}

func fieldPairs(record models.ModRecord) []string {
	value := reflect.ValueOf(record)
	recordType := value.Type()

	pairs := make([]string, 0, recordType.NumField())
	for i := 0; i < recordType.NumField(); i++ {
		field := recordType.Field(i)
		name := field.Tag.Get("csv")
		if name == "" || name == "-" {
			name = field.Name
		}
		if name == hashField {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%v", name, value.Field(i).Interface()))
	}
	return pairs
}
