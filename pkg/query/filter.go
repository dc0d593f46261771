package query

// MatchesClass reports whether a member of runtime class className belongs
// in a view expecting class expected. Only exact matches count.
func MatchesClass(className, expected string) bool {
	return className == expected
}
