package version

// Version, Commit, and Date are set via ldflags at build time.
//
//	go build -ldflags "-X github.com/container-lab/liveness/pkg/version.Version=v0.1.0
//	  -X github.com/container-lab/liveness/pkg/version.Commit=abc1234"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
