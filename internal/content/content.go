// Package content holds the static copy shown on the public pages.
package content

import (
	"slices"
	"strings"
)

// Profile is one cast or crew member on the about page.
type Profile struct {
	Name  string
	Role  string
	Bio   string
	Image string
}

// Initials returns up to two uppercase initials for image placeholders.
func (p Profile) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(p.Name) {
		b.WriteString(strings.ToUpper(word[:1]))
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}

// SocialLink is an outbound link shown on the home page.
type SocialLink struct {
	Label string
	Badge string
	URL   string
}

// Film describes the production for page metadata.
type Film struct {
	Title       string
	Tagline     string
	Credit      string
	Description string
	Copyright   string
}

//nolint:gochecknoglobals // static page copy
var film = Film{
	Title:       "CRAK HACK",
	Tagline:     "A signal slips in. The visor stays on. Reality glitches.",
	Credit:      "A Short Film by Brendan Cleaves",
	Description: "A sci-fi horror about a man whose VR headset is hacked. The world around him dulls, then distorts, then refuses to let him go.",
	Copyright:   "Copyright 2025",
}

//nolint:gochecknoglobals // static page copy
var profiles = []Profile{
	{
		Name:  "Brendan Cleaves",
		Role:  "Writer / Director",
		Bio:   "Profile loading…",
		Image: "/images/brendan-cleaves.png",
	},
	{
		Name:  "Howard Mills",
		Role:  "Director of Photography",
		Bio:   "A London-based cinematographer working across narrative, documentary, and commercial projects, with a strong focus on visual storytelling and emotional impact. His debut feature Retreat is currently on the 2024 festival circuit, following successful runs for his short films 7-10, Tap Boy, and Aria. His promo People Let’s Dance for Public Service Broadcasting was nominated for an MVA. He is a member of BAFTA Crew and was recently featured in British Cinematography’s “Meet the New Wave”.",
		Image: "/images/howard-mills.png",
	},
	{
		Name:  "Ryan McCarthy",
		Role:  "Art Director",
		Bio:   "Trained in Architecture (BA, 2013) and Critical Design (MA, 2015), with a strong focus on experiential design and the emotional journey through space. Since 2015, he has worked across commercials and television, progressing from Art Department Assistant to Set Designer and Art Director on projects for brands including Virgin Media, Magnum, and Pizza Express, and networks such as Netflix, Syfy, and ITV. His work is driven by a belief in growth, craft, and shaping meaningful spatial narratives for contemporary audiences.",
		Image: "/images/ryan-mccarthy.png",
	},
	{
		Name:  "Johnny Vivash",
		Role:  "Lead Actor",
		Bio:   "Bio coming soon.",
		Image: "/images/johnny-vivash.png",
	},
	{
		Name:  "Amanda Lara Kay",
		Role:  "Lead Actress",
		Bio:   "Profile loading…",
		Image: "/images/amanda-lara-kay.png",
	},
	{
		Name:  "Sanj Surati",
		Role:  "Lead Support",
		Bio:   "London-born stand-up comedian, improviser, and actor known for his sharp wit and commanding screen presence. Trained in theatre under John Buckingham, he began his career as a rock musician before moving into acting. He has worked with directors including Sam Raimi, Stephen Frears, Guy Ritchie, and Chloé Zhao, and appeared alongside Pierce Brosnan, Elizabeth Olsen, and Freya Allan. A regular international improv performer, he is currently appearing in London’s West End in the award-winning Japanese improvisation show Batsu! and is a trustee of the English Touring Theatre.",
		Image: "/images/sanj-surati.png",
	},
	{
		Name:  "Jon Draper",
		Role:  "VFX Artist",
		Bio:   "Founder of Stormy Studio and AIAnimation.com, with 20+ years’ experience in animation and creative production. After building Stormy Studio into an award-winning animation company delivering hundreds of projects for UK SMEs, FTSE 100 firms, and global brands, he is now focused on the future of animation. Through AIAnimation.com, he is developing an AI-powered platform enabling creators and brands to generate images, 3D models, animation, and video from a single, unified workflow, with growing adoption across the animation and advertising industries.",
		Image: "/images/jon-draper.png",
	},
	{
		Name:  "Joe Holweger",
		Role:  "Music Composer",
		Bio:   "Joe Holweger is a composer and actor from London. He has scored a number of short films in recent years, having come from a background as a touring professional musician, including working as a touring musician with Adam Ant. He has also written songs for many well-known pop artists, and composed music for various TV shows, documentaries, and advertisements.",
		Image: "/images/joe-holweger.png",
	},
}

//nolint:gochecknoglobals // static page copy
var socialLinks = []SocialLink{
	{Label: "Instagram", Badge: "IG", URL: "https://www.instagram.com/crakhackfilm"},
	{Label: "IMDb", Badge: "IMDb", URL: "https://www.imdb.com/title/tt39457194/"},
}

// FilmInfo returns the film metadata.
func FilmInfo() Film {
	return film
}

// Profiles returns the cast and crew in display order.
func Profiles() []Profile {
	return slices.Clone(profiles)
}

// SocialLinks returns the outbound links in display order.
func SocialLinks() []SocialLink {
	return slices.Clone(socialLinks)
}
