package practice

import (
	"fmt"
	"math/rand"
	"time"
)

// PolicyNumber builds a policy number from the issue date and a random
// five-digit suffix: POL + YYYYMMDD + [10000, 99999]. Every call draws
// a fresh suffix.
func PolicyNumber(issued time.Time) string {
	return fmt.Sprintf("POL%s%d", issued.Format("20060102"), 10000+rand.Intn(90000))
}
