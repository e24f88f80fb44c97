// Package schema declares the header vocabulary recognized in question files.
//
// Everything here is static, read-only data: the column roles a spreadsheet
// header can map to, the spellings accepted for each role (Turkish and
// English), and the keyword sets used to classify question types.
package schema

import "strings"

// Role is a semantic column role in a question spreadsheet.
type Role int

const (
	RoleQuestion Role = iota
	RoleType
	RoleOptionA
	RoleOptionB
	RoleOptionC
	RoleOptionD
	RoleOptionE
	RoleCorrectAnswer
	RolePoints
	RoleExplanation

	roleCount
)

// RoleCount is the number of defined roles.
const RoleCount = int(roleCount)

// String returns the role's identifier as used in logs and API responses.
func (r Role) String() string {
	switch r {
	case RoleQuestion:
		return "question"
	case RoleType:
		return "type"
	case RoleOptionA:
		return "option_a"
	case RoleOptionB:
		return "option_b"
	case RoleOptionC:
		return "option_c"
	case RoleOptionD:
		return "option_d"
	case RoleOptionE:
		return "option_e"
	case RoleCorrectAnswer:
		return "correct_answer"
	case RolePoints:
		return "points"
	case RoleExplanation:
		return "explanation"
	default:
		return "unknown"
	}
}

// Roles returns every role in match order.
func Roles() []Role {
	roles := make([]Role, 0, RoleCount)
	for r := Role(0); r < roleCount; r++ {
		roles = append(roles, r)
	}
	return roles
}

// OptionRoles returns the option roles in letter order (A..E).
func OptionRoles() []Role {
	return []Role{RoleOptionA, RoleOptionB, RoleOptionC, RoleOptionD, RoleOptionE}
}

// MatchMode controls how a header is compared against a spelling.
type MatchMode int

const (
	MatchExact    MatchMode = iota // header equals the spelling
	MatchContains                  // header contains the spelling
)

// Synonym lists the accepted header spellings for one role.
type Synonym struct {
	Role      Role
	Mode      MatchMode
	Spellings []string
}

// Matches reports whether a folded header satisfies this synonym.
func (s Synonym) Matches(folded string) bool {
	for _, sp := range s.Spellings {
		want := Fold(sp)
		switch s.Mode {
		case MatchExact:
			if folded == want {
				return true
			}
		case MatchContains:
			if strings.Contains(folded, want) {
				return true
			}
		}
	}
	return false
}

// synonyms is the declarative header table, one entry per role, in match order.
var synonyms = []Synonym{
	{Role: RoleQuestion, Mode: MatchContains, Spellings: []string{"soru", "question"}},
	{Role: RoleType, Mode: MatchExact, Spellings: []string{"type", "tip", "tür"}},
	{Role: RoleOptionA, Mode: MatchExact, Spellings: optionSpellings("a")},
	{Role: RoleOptionB, Mode: MatchExact, Spellings: optionSpellings("b")},
	{Role: RoleOptionC, Mode: MatchExact, Spellings: optionSpellings("c")},
	{Role: RoleOptionD, Mode: MatchExact, Spellings: optionSpellings("d")},
	{Role: RoleOptionE, Mode: MatchExact, Spellings: optionSpellings("e")},
	{Role: RoleCorrectAnswer, Mode: MatchContains, Spellings: []string{"doğru", "cevap", "answer", "correct"}},
	{Role: RolePoints, Mode: MatchExact, Spellings: []string{"points", "score", "puan"}},
	{Role: RoleExplanation, Mode: MatchContains, Spellings: []string{"açıklama", "explanation"}},
}

func optionSpellings(letter string) []string {
	return []string{letter, "option " + letter, "seçenek " + letter}
}

// Table returns a copy of the synonym table in match order.
func Table() []Synonym {
	out := make([]Synonym, len(synonyms))
	copy(out, synonyms)
	return out
}

// Match returns the first role whose synonyms accept the header.
// The header is trimmed, lower-cased and folded before comparison.
func Match(header string) (Role, bool) {
	folded := Fold(header)
	if folded == "" {
		return 0, false
	}
	for _, s := range synonyms {
		if s.Matches(folded) {
			return s.Role, true
		}
	}
	return 0, false
}

// Fold trims and lower-cases s and maps Turkish letters onto their ASCII
// counterparts, so "AÇIKLAMA", "açıklama" and "aciklama" compare equal.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case 'ı':
			return 'i'
		case 'ğ':
			return 'g'
		case 'ş':
			return 's'
		case 'ç':
			return 'c'
		case 'ö':
			return 'o'
		case 'ü':
			return 'u'
		case 'â':
			return 'a'
		case 'î':
			return 'i'
		case 'û':
			return 'u'
		case '\u0307': // combining dot left behind by some "İ" lowercasings
			return -1
		}
		return r
	}, s)
}
