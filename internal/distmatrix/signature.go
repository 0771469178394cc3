package distmatrix

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"irp-planner/internal/domain"
)

// Signature returns a stable key for the depot/customer footprint that
// produces a given matrix. Coordinates are formatted to fixed precision
// before hashing so that floating-point representation noise never
// produces spurious cache misses.
func Signature(depot domain.Depot, customers []domain.Customer) string {
	var b strings.Builder
	writeCoord(&b, depot.Lat, depot.Lon)
	for _, c := range customers {
		b.WriteByte('|')
		writeCoord(&b, c.Lat, c.Lon)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeCoord(b *strings.Builder, lat, lon float64) {
	b.WriteString(strconv.FormatFloat(lat, 'f', 6, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(lon, 'f', 6, 64))
}
