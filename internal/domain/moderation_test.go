package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "spam", Normalize("  SPAM "))
	assert.Equal(t, "", Normalize("   "))
}

func TestTermSetBlocks(t *testing.T) {
	tests := []struct {
		name string
		set  TermSet
		in   string
		want bool
	}{
		{
			name: "blacklist substring bloquea",
			set:  TermSet{Blacklist: []string{"spam"}},
			in:   "SuperSpammer99",
			want: true,
		},
		{
			name: "sin match no bloquea",
			set:  TermSet{Blacklist: []string{"spam"}},
			in:   "Carlos",
			want: false,
		},
		{
			name: "whitelist gana aunque haya match de blacklist",
			set:  TermSet{Blacklist: []string{"spam"}, Whitelist: []string{"spammer"}},
			in:   "SuperSpammer99",
			want: false,
		},
		{
			name: "case fold en ambos lados",
			set:  TermSet{Blacklist: []string{"spam"}},
			in:   "SPAM-lord",
			want: true,
		},
		{
			name: "nombre vacío nunca bloquea",
			set:  TermSet{Blacklist: []string{"spam"}},
			in:   "",
			want: false,
		},
		{
			name: "sets vacíos no bloquean",
			set:  TermSet{},
			in:   "cualquiera",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Blocks(tt.in))
		})
	}
}

func TestTermSetCloneNoComparteBackingArray(t *testing.T) {
	orig := TermSet{Blacklist: []string{"spam", "bot"}, Whitelist: []string{"vip"}}
	c := orig.Clone()

	c.Blacklist[0] = "otro"
	assert.Equal(t, "spam", orig.Blacklist[0])
	assert.Equal(t, []string{"vip"}, c.Whitelist)
}

func TestTermSetHas(t *testing.T) {
	set := TermSet{Blacklist: []string{"spam"}, Whitelist: []string{"vip"}}
	assert.True(t, set.Has("spam", "blacklist"))
	assert.True(t, set.Has("vip", "whitelist"))
	assert.False(t, set.Has("spam", "whitelist"))
}
