// Package seat derives seat assignments and ticket identifiers for
// enrollments.  The derivation is deterministic in (buyer identity,
// enrollment time): both inputs are concatenated and hashed, so two
// calls with identical inputs always yield the same assignment.
//
// The timestamp is the only entropy source.  A caller who can predict
// or influence the enrollment time at transaction granularity can
// predict the seat and ticket id.  That is a known property inherited
// from the system this replaces and is kept for compatibility; a
// hardened variant would mix in entropy the buyer cannot influence.
package seat

import (
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Labels is the fixed seat table.  Order matters: the hash indexes into
// it, so reordering entries changes every assignment.
var Labels = []string{"A1", "B12", "103", "C7", "D20"}

// seatNumbers maps each known label to its seat number.  Labels outside
// the table fall back to seat 1; the lookup below can only miss if the
// table and this map drift apart, and the fallback keeps that case
// non-fatal rather than correct.
var seatNumbers = map[string]uint32{
	"A1":  1,
	"B12": 12,
	"103": 103,
	"C7":  7,
	"D20": 20,
}

// Assignment is the result of a seat allocation.
type Assignment struct {
	Label    string   // entry from Labels
	SeatNo   uint32   // numeric seat derived from Label
	TicketID [16]byte // first 16 bytes of the derivation hash
}

// Allocate derives the assignment for a buyer enrolling at the given
// time.  The hash input is the buyer identity bytes followed by the
// little-endian encoding of the Unix timestamp in seconds.
func Allocate(buyer string, now time.Time) Assignment {
	seed := make([]byte, 0, len(buyer)+8)
	seed = append(seed, buyer...)
	seed = binary.LittleEndian.AppendUint64(seed, uint64(now.Unix()))

	sum := sha256.Sum256(seed)

	label := Labels[int(sum[0])%len(Labels)]
	no, ok := seatNumbers[label]
	if !ok {
		no = 1
	}

	var id [16]byte
	copy(id[:], sum[:16])

	return Assignment{Label: label, SeatNo: no, TicketID: id}
}
