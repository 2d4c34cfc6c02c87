package algobridge

import "github.com/jward/codegraph/errs"

// ValidateSymbolSet checks that every entry of a caller-supplied SymbolSet
// is 32 lowercase hex characters, the indexer's SymbolId shape.
func ValidateSymbolSet(ids []string) error {
	for _, id := range ids {
		if !isHex32(id) {
			return errs.PathValidationFailed(id, "not a 32-character lowercase-hex SymbolId")
		}
	}
	return nil
}

func isHex32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
