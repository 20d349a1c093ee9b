package core

// utoa converts an unsigned integer to a string without the fmt package,
// which is too heavy for the firmware image
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte // 4294967295
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}
