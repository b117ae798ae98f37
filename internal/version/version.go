package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/taoziyu97/sra-tools/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/taoziyu97/sra-tools/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/taoziyu97/sra-tools/internal/version.Date={{.Date}}
)
