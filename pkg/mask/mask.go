// Package mask renders clearing and account digits through a display template.
//
// A template uses 'C' for a clearing digit and 'A' for an account digit.
// Every other byte is copied as a literal separator.
package mask

import "strings"

const (
	// Clearing is the placeholder for a clearing number digit.
	Clearing = 'C'
	// Account is the placeholder for an account number digit.
	Account = 'A'
)

// Fill renders clearing and account through template.
//
// The template is split after its last 'C'. The clearing part is filled left
// to right, using a space once the clearing digits run out. The account part
// is filled right to left; missing digits become '0' when pad is set and a
// space otherwise. Digits that do not fit are prepended in front of the first
// 'A' so nothing is truncated. Without pad, filling stops as soon as the
// account digits are used up and only the literal prefix before the first 'A'
// is kept.
func Fill(clearing, account, template string, pad bool) string {
	split := strings.LastIndexByte(template, Clearing) + 1

	var b strings.Builder
	b.Grow(len(template) + len(account))
	b.WriteString(fillClearing(clearing, template[:split]))
	b.WriteString(fillAccount(account, template[split:], pad))
	return b.String()
}

func fillClearing(digits, template string) string {
	out := make([]byte, len(template))
	next := 0
	for i := 0; i < len(template); i++ {
		if template[i] != Clearing {
			out[i] = template[i]
			continue
		}
		if next < len(digits) {
			out[i] = digits[next]
			next++
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}

// fillAccount builds its output back to front in rev and reverses it at the end.
// remaining counts the account digits not yet placed; digits[:remaining] is
// what is left to consume, most significant first.
func fillAccount(digits, template string, pad bool) string {
	first := strings.IndexByte(template, Account)
	remaining := len(digits)
	rev := make([]byte, 0, len(template)+len(digits))

	for i := len(template) - 1; i >= 0; i-- {
		switch {
		case template[i] != Account:
			rev = append(rev, template[i])
		case remaining > 0:
			remaining--
			rev = append(rev, digits[remaining])
		case pad:
			rev = append(rev, '0')
		default:
			rev = append(rev, ' ')
		}

		if i == first {
			for remaining > 0 {
				remaining--
				rev = append(rev, digits[remaining])
			}
		}

		if remaining == 0 && !pad {
			if first > 0 {
				rev = appendReversed(rev, template[:first])
			}
			break
		}
	}

	reverse(rev)
	return string(rev)
}

func appendReversed(dst []byte, s string) []byte {
	for i := len(s) - 1; i >= 0; i-- {
		dst = append(dst, s[i])
	}
	return dst
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
