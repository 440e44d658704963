package agendas

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The frontend references agenda items three ways: canonical uuid, raw
// sequence number, and the legacy "manifesto-<n>" slug. Everything funnels
// through Resolve into a single uuid lookup key.

var manifestoPattern = regexp.MustCompile(`^manifesto-(\d+)$`)

var ErrUnrecognizedID = errors.New("unrecognized agenda identifier")

func ToManifestoFormat(n int) string {
	return fmt.Sprintf("manifesto-%d", n)
}

// rollingHash is the 32-bit accumulate-and-wrap hash used to synthesize
// fallback ids. Not cryptographic; collisions only cost a missed lookup.
func rollingHash(s string) uint32 {
	var h int32
	for _, c := range []byte(s) {
		h = h*31 + int32(c)
	}
	return uint32(h)
}

// DeterministicUUID synthesizes a stable uuid-shaped id for a manifesto item
// that has no database row yet. Pure function of the sequence number: the
// same input always yields the same output across requests and restarts.
func DeterministicUUID(seq int) string {
	h := fmt.Sprintf("%08x", rollingHash(fmt.Sprintf("agenda-manifesto-%d", seq)))
	tail := fmt.Sprintf("%012d", int64(seq)%1_000_000_000_000)
	return fmt.Sprintf("%s-%s-4%s-8%s-%s", h, h[:4], h[:3], h[:3], tail)
}

// Resolve maps any accepted identifier shape to the canonical uuid. A
// sequence number with no matching row resolves to the deterministic
// fallback id so pre-seeded references stay consistent.
func Resolve(raw string) (string, error) {
	if parsed, err := uuid.Parse(raw); err == nil {
		return parsed.String(), nil
	}

	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		raw = ToManifestoFormat(n)
	}

	m := manifestoPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrUnrecognizedID
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return "", ErrUnrecognizedID
	}

	var agenda Agenda
	err = db.DB.Select("id").First(&agenda, "sequence_id = ?", seq).Error
	switch {
	case err == nil:
		return agenda.ID.String(), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return DeterministicUUID(seq), nil
	default:
		return "", err
	}
}
