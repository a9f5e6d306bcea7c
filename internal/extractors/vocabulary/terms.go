package vocabulary

import (
	"regexp"
	"sort"
	"strings"
)

// term is one canonical vocabulary entry and the spellings that select it.
type term struct {
	canon         string
	aliases       []string
	caseSensitive bool
}

// terms is a compiled vocabulary.
// Case-insensitive and case-sensitive aliases are matched by separate
// expressions so that short acronyms ("Go", "R", "SF") do not fire on
// ordinary words.
type terms struct {
	folded     *regexp.Regexp
	exact      *regexp.Regexp
	foldCanon  map[string]string
	exactCanon map[string]string
}

// Characters that may not touch a term on either side.
const wordChars = `A-Za-z0-9+#&`

func compileTerms(entries []term) *terms {
	t := &terms{
		foldCanon:  make(map[string]string),
		exactCanon: make(map[string]string),
	}

	var folded, exact []string
	for _, e := range entries {
		if e.caseSensitive {
			for _, alias := range e.aliases {
				t.exactCanon[alias] = e.canon
				exact = append(exact, alias)
			}
			continue
		}
		for _, alias := range append([]string{e.canon}, e.aliases...) {
			key := strings.ToLower(alias)
			if _, ok := t.foldCanon[key]; ok {
				continue
			}
			t.foldCanon[key] = e.canon
			folded = append(folded, alias)
		}
	}

	t.folded = alternation(folded, true)
	t.exact = alternation(exact, false)
	return t
}

// alternation builds a bounded alternation with longer aliases first,
// so "asp.net" wins over ".net" and "react native" over "react".
func alternation(aliases []string, fold bool) *regexp.Regexp {
	if len(aliases) == 0 {
		return nil
	}
	sorted := append([]string(nil), aliases...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	parts := make([]string, len(sorted))
	for i, a := range sorted {
		parts[i] = strings.ReplaceAll(regexp.QuoteMeta(a), " ", `\s+`)
	}

	flags := ""
	if fold {
		flags = "(?i)"
	}
	return regexp.MustCompile(flags + `(?:^|[^` + wordChars + `])(` +
		strings.Join(parts, "|") + `)(?:$|[^` + wordChars + `])`)
}

// find returns the sorted canonical names of every term present in text.
func (t *terms) find(text string) []string {
	found := make(map[string]struct{})
	scan(t.folded, text, func(m string) {
		if c, ok := t.foldCanon[strings.ToLower(collapse(m))]; ok {
			found[c] = struct{}{}
		}
	})
	scan(t.exact, text, func(m string) {
		if c, ok := t.exactCanon[collapse(m)]; ok {
			found[c] = struct{}{}
		}
	})
	return sortedKeys(found)
}

// lookup resolves a single token to its canonical name.
func (t *terms) lookup(token string) (string, bool) {
	if c, ok := t.exactCanon[token]; ok {
		return c, true
	}
	c, ok := t.foldCanon[strings.ToLower(token)]
	return c, ok
}

// scan reports each captured term. The search resumes right after the
// term rather than after the trailing boundary, so adjacent terms
// separated by a single character are all seen.
func scan(re *regexp.Regexp, text string, fn func(string)) {
	if re == nil {
		return
	}
	for pos := 0; pos < len(text); {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return
		}
		fn(text[pos+loc[2] : pos+loc[3]])
		pos += loc[3]
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
