package version

// Set at build time with -ldflags "-X benchpark/internal/version.Version=...".
var (
	PackageName = "benchpark"
	Version     = "undefined"
	CommitHash  = "undefined"
	BuildDate   = "undefined"
)
