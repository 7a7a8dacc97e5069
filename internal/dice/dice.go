package dice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Die is a group of identical dice such as 2d6
type Die struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

func (d Die) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Size)
}

var notation = regexp.MustCompile(`(\d*)\s*[dD](\d+)`)

// Find returns the first dice term inside an expression such as
// "1d8 + strength.modifier". A missing count reads as one die.
func Find(expr string) (Die, bool) {
	m := notation.FindStringSubmatch(expr)
	if m == nil {
		return Die{}, false
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Die{}, false
		}
		count = n
	}

	size, err := strconv.Atoi(m[2])
	if err != nil || size < 1 {
		return Die{}, false
	}

	return Die{Size: size, Count: count}, true
}

// ParseSize reads a die size written as "d8", "D8" or "8"
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "d"), "D")

	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid dice size")
	}
	if size < 1 {
		return 0, errors.New("invalid dice size")
	}

	return size, nil
}
