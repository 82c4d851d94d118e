package server

import "crypto/rand"

// newRoomCode returns a 6-character human-shareable room code. Ambiguous
// characters (O, 0, I, 1) are left out of the alphabet.
func newRoomCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
