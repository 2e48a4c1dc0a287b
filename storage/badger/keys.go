// Copyright 2025 Joblens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/joblens/joblens/core"
)

// Key prefixes. Every record class gets its own colon-terminated namespace
// so prefix scans never bleed into a neighbouring class.
const (
	listingRecordPrefix    = "lstrec"
	listingDatePrefix      = "lstdat"
	listingURLPrefix       = "lsturl"
	embeddingRecordPrefix  = "embrec"
	embeddingListingPrefix = "emblst"
	embeddingIDSequence    = "embseq"
	clusterRecordPrefix    = "clurec"
	clusterIDSequence      = "cluseq"
	summaryRecordPrefix    = "sumrec"
	reportRecordPrefix     = "reprec"
	reportIDSequence       = "repseq"
)

// makeListingKey creates a key for a listing record.
func makeListingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", listingRecordPrefix, id))
}

// makeListingDateKey creates a composite creation-date index key.
// Format: lstdat:<8-byte big-endian unix micro>:<8-byte big-endian id>
// Big-endian encoding makes lexicographic key order equal chronological order.
func makeListingDateKey(createdAt time.Time, id core.ID) []byte {
	key := make([]byte, 0, len(listingDatePrefix)+1+8+1+8)
	key = append(key, listingDatePrefix...)
	key = append(key, ':')
	key = binary.BigEndian.AppendUint64(key, uint64(createdAt.UnixMicro()))
	key = append(key, ':')
	key = binary.BigEndian.AppendUint64(key, uint64(id))
	return key
}

// parseListingDateKey extracts the timestamp and listing ID from a date index key.
func parseListingDateKey(key []byte) (time.Time, core.ID, error) {
	want := len(listingDatePrefix) + 1 + 8 + 1 + 8
	if len(key) != want {
		return time.Time{}, 0, fmt.Errorf("invalid date index key length %d", len(key))
	}
	off := len(listingDatePrefix) + 1
	micros := binary.BigEndian.Uint64(key[off : off+8])
	id := binary.BigEndian.Uint64(key[off+9 : off+17])
	return time.UnixMicro(int64(micros)), core.ID(id), nil
}

// makeListingURLKey creates a URL lookup index key.
func makeListingURLKey(url string) []byte {
	return []byte(fmt.Sprintf("%s:%s", listingURLPrefix, url))
}

// makeEmbeddingKey creates a key for an embedding record.
func makeEmbeddingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingRecordPrefix, id))
}

// makeEmbeddingListingKey creates a listing-to-embedding index key.
func makeEmbeddingListingKey(listingId core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingListingPrefix, listingId))
}

// makeClusterKey creates a key for a cluster record.
func makeClusterKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", clusterRecordPrefix, id))
}

// makeSummaryKey creates a key for a cluster summary, keyed by cluster ID.
func makeSummaryKey(clusterId core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", summaryRecordPrefix, clusterId))
}

// makeReportKey creates a key for an update report. The ID segment is
// big-endian so reverse prefix iteration yields most-recent-first.
func makeReportKey(id core.ID) []byte {
	key := make([]byte, 0, len(reportRecordPrefix)+1+8)
	key = append(key, reportRecordPrefix...)
	key = append(key, ':')
	key = binary.BigEndian.AppendUint64(key, uint64(id))
	return key
}

// prefixBytes returns the scan prefix for a record class, colon included.
func prefixBytes(prefix string) []byte {
	return []byte(prefix + ":")
}
