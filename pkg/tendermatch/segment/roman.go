package segment

var romanValues = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// DecodeRoman converts a Roman numeral using subtractive notation,
// scanning right to left: a symbol smaller than the one to its right
// is subtracted, otherwise added. Malformed input decodes to 1.
func DecodeRoman(s string) int {
	if s == "" {
		return 1
	}

	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		val, ok := romanValues[upperByte(s[i])]
		if !ok {
			return 1
		}
		if val < prev {
			total -= val
		} else {
			total += val
		}
		prev = val
	}

	if total <= 0 {
		return 1
	}
	return total
}

// isRoman reports whether every byte of s is a Roman numeral symbol.
func isRoman(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := romanValues[upperByte(s[i])]; !ok {
			return false
		}
	}
	return true
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
