package insight

// Platform identifies where a community signal or primary source lives.
type Platform string

const (
	PlatformReddit      Platform = "reddit"
	PlatformHackerNews  Platform = "hackernews"
	PlatformTwitter     Platform = "twitter"
	PlatformYouTube     Platform = "youtube"
	PlatformGitHub      Platform = "github"
	PlatformProductHunt Platform = "producthunt"
	PlatformLinkedIn    Platform = "linkedin"
)

// PlatformMeta is display and normalization configuration for one platform.
type PlatformMeta struct {
	Label string
	Color string
	// MemberThreshold is the community size considered "large" on this
	// platform; member counts are reported relative to it.
	MemberThreshold int
}

// Read-only configuration, initialized once. Never mutated at runtime.
var platformMeta = map[Platform]PlatformMeta{
	PlatformReddit:      {Label: "Reddit", Color: "#ff4500", MemberThreshold: 500000},
	PlatformHackerNews:  {Label: "Hacker News", Color: "#ff6600", MemberThreshold: 100000},
	PlatformTwitter:     {Label: "X / Twitter", Color: "#1d9bf0", MemberThreshold: 1000000},
	PlatformYouTube:     {Label: "YouTube", Color: "#ff0000", MemberThreshold: 1000000},
	PlatformGitHub:      {Label: "GitHub", Color: "#24292f", MemberThreshold: 50000},
	PlatformProductHunt: {Label: "Product Hunt", Color: "#da552f", MemberThreshold: 100000},
	PlatformLinkedIn:    {Label: "LinkedIn", Color: "#0a66c2", MemberThreshold: 2000000},
}

// Meta returns display metadata for a platform. Unknown platforms get a
// neutral fallback so rendering never breaks on new upstream platforms.
func (p Platform) Meta() PlatformMeta {
	if m, ok := platformMeta[p]; ok {
		return m
	}
	return PlatformMeta{Label: string(p), Color: "#6b7280", MemberThreshold: 100000}
}
