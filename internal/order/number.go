package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber produces a short human-presentable order identifier in
// the form ORD-YYYYMMDD-NNNN. The random suffix is unique enough for
// restaurant-scale daily volume; the per-tenant unique index catches the
// rare collision and creation retries with a fresh number.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}
