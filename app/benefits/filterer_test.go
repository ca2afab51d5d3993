package benefits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGroupOnlySection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  bool
	}{
		{"Fordele for grupper", true},
		{"Fordele for  FORENINGER og klubber", true},
		{"Organisationer med særlige fordele", true},
		{"Medlemsfordele", false},
		{"Grupper", false},
		{"Fordel for foreninger", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsGroupOnlySection(tt.title))
		})
	}
}

func TestFilterer_RejectItem(t *testing.T) {
	t.Parallel()

	f := NewFilterer()

	rejected, reason := f.RejectItem(Item{Title: "Fordel", Description: "En beskrivelse der er lang nok."})
	assert.True(t, rejected)
	assert.Equal(t, "no link", reason)

	rejected, reason = f.RejectItem(Item{Title: "Fordel", Link: "https://example.com", Description: "æøåæøåæøåæøåæøåæøå"})
	assert.True(t, rejected)
	assert.Equal(t, "description too short (18)", reason)

	rejected, _ = f.RejectItem(Item{Title: "Fordel", Link: "https://example.com", Description: "æøåæøåæøåæøåæøåæøåæø"})
	assert.False(t, rejected)
}

func TestFilterer_AcceptMarksTitleSeen(t *testing.T) {
	t.Parallel()

	f := NewFilterer()

	rejected, _ := f.RejectHeading("Gratis kaffe", "")
	assert.False(t, rejected)

	f.Accept(Item{Title: "Gratis kaffe"})

	rejected, reason := f.RejectHeading("GRATIS   kaffe", "")
	assert.True(t, rejected)
	assert.Equal(t, "duplicate title", reason)
}
