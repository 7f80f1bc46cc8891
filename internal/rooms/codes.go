package rooms

import "imposterparty/internal/random"

// Room codes are 6-character uppercase base-36 strings, e.g. "AB12CD".
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const codeLength = 6

func GenerateCode(src random.Source) string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[src.Intn(len(codeAlphabet))]
	}
	return string(code)
}
