package bulletins

import (
	"strconv"
	"strings"
)

func Filter(all []Bulletin, rng string, list string) []Bulletin {
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}
	return all
}

func FilterRange(all []Bulletin, rng string) []Bulletin {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}
	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil
	}
	return all[start-1 : end]
}

func FilterList(all []Bulletin, list string) []Bulletin {
	nums := strings.Split(list, ",")
	out := []Bulletin{}
	for _, n := range nums {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		idx, err := atoi(n)
		if err != nil {
			continue
		}
		if idx > 0 && idx <= len(all) {
			out = append(out, all[idx-1])
		}
	}
	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
