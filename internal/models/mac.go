package models

// Mac is a normalized MAC address: lower-case, colon-separated,
// "aa:bb:cc:dd:ee:ff". Construct one through ParseMac so every Mac in the
// system is already canonical and safe to compare byte-for-byte.
type Mac string

// ParseMac validates and normalizes a MAC address string. Input must be
// exactly six colon-separated hex octets; casing is accepted and folded to
// lower case.
func ParseMac(input string) (Mac, error) {
	if len(input) != 17 {
		return "", ErrInvalidMac
	}

	out := make([]byte, 17)
	for i := 0; i < 17; i++ {
		c := input[i]
		if (i+1)%3 == 0 {
			if c != ':' {
				return "", ErrInvalidMac
			}
			out[i] = c
			continue
		}
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
			out[i] = c
		case c >= 'A' && c <= 'F':
			out[i] = c + ('a' - 'A')
		default:
			return "", ErrInvalidMac
		}
	}

	return Mac(out), nil
}

func (m Mac) String() string {
	return string(m)
}
