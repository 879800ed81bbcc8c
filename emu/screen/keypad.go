package screen

import "unicode"

// The COSMAC VIP hex keypad laid over the left hand side of a QWERTY
// keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keypad = map[rune]uint16{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyFor returns the hex key a keyboard character is bound to.
func KeyFor(r rune) (uint16, bool) {
	key, ok := keypad[unicode.ToLower(r)]
	return key, ok
}
