package boxscore

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/valyala/bytebufferpool"
)

// Fingerprint hashes a complete row snapshot. Column order inside a row does
// not matter, row order does.
func Fingerprint(rows []RawRow) uint64 {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	digest := xxhash.New()
	keys := make([]string, 0, 32)
	for i, row := range rows {
		buf.Reset()
		_, _ = buf.WriteString(strconv.Itoa(i))
		_ = buf.WriteByte(0x1e)

		keys = keys[:0]
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			_, _ = buf.WriteString(key)
			_ = buf.WriteByte(0x1f)
			_, _ = buf.WriteString(row[key])
			_ = buf.WriteByte(0x1f)
		}
		_, _ = digest.Write(buf.B)
	}
	return digest.Sum64()
}

// SnapshotPrefix is the cache key prefix shared by every snapshot of an entity.
func SnapshotPrefix(entityID string) string {
	return "lines:" + entityID + ":"
}

// SnapshotKey identifies the normalized lines of one entity snapshot.
func SnapshotKey(entityID string, rows []RawRow) string {
	return SnapshotPrefix(entityID) + strconv.FormatUint(Fingerprint(rows), 16)
}
