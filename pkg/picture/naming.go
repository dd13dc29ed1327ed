package picture

import "time"

const (
	DefaultBaseName = "camera"

	// Hour on a 12-hour clock without padding, then minutes and seconds.
	// Two captures within the same second share a name and the later one
	// overwrites the earlier.
	timeSuffixLayout = "30405"
)

func artifactName(base string, at time.Time, suffix string) string {
	if base == "" {
		base = DefaultBaseName
	}
	return base + at.Format(timeSuffixLayout) + suffix
}
