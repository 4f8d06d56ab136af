package versioning

// Build metadata of the harness binary, embedded with --ldflags:
//
//	-X github.com/0xPolygon/lottery-harness/versioning.Version=v0.1.0
var (
	Version   string
	Branch    string
	Commit    string
	BuildTime string
)

const devVersion = "dev"

// ReleaseVersion returns the embedded version or "dev" for local builds
func ReleaseVersion() string {
	if Version == "" {
		return devVersion
	}

	return Version
}
