package token

import "regexp"

// compiled holds the anchored form of every pattern kind's shape.
var compiled = func() map[Kind]*regexp.Regexp {
	m := make(map[Kind]*regexp.Regexp)
	for _, k := range Kinds() {
		if k.IsPattern() {
			m[k] = regexp.MustCompile(`^(?:` + k.Text() + `)$`)
		}
	}
	return m
}()

// Matches reports whether text, taken on its own, is spelled like a token
// of kind k. Fixed kinds require the exact text; pattern kinds must match
// their whole shape.
func (k Kind) Matches(text string) bool {
	if !k.Valid() {
		return false
	}
	if re, ok := compiled[k]; ok {
		return re.MatchString(text)
	}
	return text == k.Text()
}
