package version

// Build information set by ldflags
var (
	Version = "0.2.0"   // Set by goreleaser: -X github.com/zanyuzhao/spec-coding/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/zanyuzhao/spec-coding/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/zanyuzhao/spec-coding/internal/version.Date={{.Date}}
)
