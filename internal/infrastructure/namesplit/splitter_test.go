package namesplit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"modsoc/internal/domain/piazza"
)

func TestSplitter_Split(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want piazza.SplitName
	}{
		{name: "first middle last", raw: "John Q. Public", want: piazza.SplitName{First: "John", Middle: "Q.", Last: "Public"}},
		{name: "single token", raw: "Madonna", want: piazza.SplitName{First: "Madonna"}},
		{name: "empty", raw: "", want: piazza.SplitName{}},
		{name: "whitespace only", raw: "   ", want: piazza.SplitName{}},
		{name: "first last", raw: "Ada Lovelace", want: piazza.SplitName{First: "Ada", Last: "Lovelace"}},
		{name: "case preserved", raw: "ada lovelace", want: piazza.SplitName{First: "ada", Last: "lovelace"}},
		{name: "honorific dropped", raw: "Dr. Grace Brewster Hopper", want: piazza.SplitName{First: "Grace", Middle: "Brewster", Last: "Hopper"}},
		{name: "suffix dropped", raw: "Martin Luther King Jr.", want: piazza.SplitName{First: "Martin", Middle: "Luther", Last: "King"}},
		{name: "suffix after comma", raw: "Sammy Davis, Jr.", want: piazza.SplitName{First: "Sammy", Last: "Davis"}},
		{name: "last comma first", raw: "Public, John Q.", want: piazza.SplitName{First: "John", Middle: "Q.", Last: "Public"}},
		{name: "family particle", raw: "Ludwig van Beethoven", want: piazza.SplitName{First: "Ludwig", Last: "van Beethoven"}},
		{name: "markup stripped", raw: "<b>Alan</b> Turing", want: piazza.SplitName{First: "Alan", Last: "Turing"}},
		{name: "entities decoded", raw: "Conan O&#39;Brien", want: piazza.SplitName{First: "Conan", Last: "O'Brien"}},
		{name: "honorific only", raw: "Dr", want: piazza.SplitName{First: "Dr"}},
		{name: "honorific before comma", raw: "Dr. Smith, John", want: piazza.SplitName{First: "John", Last: "Smith"}},
		{name: "suffix before comma", raw: "King Jr., Martin Luther", want: piazza.SplitName{First: "Martin", Middle: "Luther", Last: "King"}},
		{name: "quoted nickname", raw: `John "Jack" Kennedy`, want: piazza.SplitName{First: "John", Last: "Kennedy"}},
		{name: "parenthesized nickname", raw: "William (Bill Jr) Gates", want: piazza.SplitName{First: "William", Last: "Gates"}},
		{name: "nickname only", raw: `"Ace"`, want: piazza.SplitName{First: `"Ace"`}},
		{name: "extra spaces", raw: "  Anne   Marie  Smith ", want: piazza.SplitName{First: "Anne", Middle: "Marie", Last: "Smith"}},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Split(tt.raw))
		})
	}
}
