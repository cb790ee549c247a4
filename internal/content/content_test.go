package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiles(t *testing.T) {
	got := Profiles()
	assert.Len(t, got, 8)
	assert.Equal(t, "Brendan Cleaves", got[0].Name)
	for _, p := range got {
		assert.NotEmpty(t, p.Role, p.Name)
		assert.True(t, strings.HasPrefix(p.Image, "/images/"), p.Name)
	}

	// Callers get a copy.
	got[0].Name = "changed"
	assert.Equal(t, "Brendan Cleaves", Profiles()[0].Name)
}

func TestProfile_Initials(t *testing.T) {
	assert.Equal(t, "BC", Profile{Name: "Brendan Cleaves"}.Initials())
	assert.Equal(t, "AL", Profile{Name: "Amanda Lara Kay"}.Initials())
	assert.Equal(t, "J", Profile{Name: "joe"}.Initials())
	assert.Empty(t, Profile{}.Initials())
}

func TestSocialLinks(t *testing.T) {
	links := SocialLinks()
	assert.Len(t, links, 2)
	for _, l := range links {
		assert.True(t, strings.HasPrefix(l.URL, "https://"), l.Label)
	}
	assert.Equal(t, "CRAK HACK", FilmInfo().Title)
}
