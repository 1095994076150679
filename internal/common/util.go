package common

// WipeByteArray overwrites the contents of buf with zeros. It is used to
// scrub passwords from memory once they have been sent to the server.
// Safe to call with nil.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
