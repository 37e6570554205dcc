package instance

import "os"

// ID returns the process instance identifier used in startup logs. Dyno
// names win over the host name; "local" is the fallback.
func ID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
