package exports

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// idGenerator produces 26-character ULIDs: a 48-bit millisecond timestamp
// followed by 80 bits of entropy, Crockford base32 encoded. IDs from one
// generator sort in creation order, including within a millisecond.
type idGenerator struct {
	mu     sync.Mutex
	now    func() time.Time
	lastMS uint64
	seq    uint16
}

func newIDGenerator(now func() time.Time) *idGenerator {
	if now == nil {
		now = time.Now
	}
	return &idGenerator{now: now}
}

func (g *idGenerator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := uint64(g.now().UnixMilli())
	if ms == g.lastMS {
		g.seq++
	} else {
		g.lastMS, g.seq = ms, 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], ms<<16)
	_, _ = rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], g.seq)
	return encodeULID(b)
}

// encodeULID writes 128 bits as 26 base32 digits. The output holds 130 bits,
// so the first digit only carries the top three bits of b.
func encodeULID(b [16]byte) string {
	var out [26]byte
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			bit := i*5 + j - 2
			if bit >= 0 && b[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = crockford[v]
	}
	return string(out[:])
}
