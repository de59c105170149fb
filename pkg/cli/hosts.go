package cli

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const defaultHost = "http://localhost:8080"

// resolveHost picks the API host by precedence flag > BAZI_HOST > profile >
// default and returns it normalised, naming the source of a bad value.
func resolveHost(cmd *cobra.Command, flagValue, profileName string, p Profile) (string, error) {
	host, source := flagValue, "--host flag"
	if !cmd.Flags().Changed("host") {
		if v := os.Getenv("BAZI_HOST"); v != "" {
			host, source = v, "BAZI_HOST"
		} else if p.Host != "" {
			host, source = p.Host, fmt.Sprintf("profile %q", profileName)
		}
	}
	return normalizeHost(host, source)
}

// normalizeHost accepts a bare http(s) base URL and strips any trailing slash.
// The client appends /v1 itself, so paths are rejected.
func normalizeHost(host, source string) (string, error) {
	host = strings.TrimSpace(host)
	fail := func(reason string) (string, error) {
		return "", fmt.Errorf("invalid host %q from %s: %s", host, source, reason)
	}
	if host == "" {
		return fail("host URL cannot be empty")
	}

	u, err := url.Parse(host)
	if err != nil {
		return fail(err.Error())
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fail("scheme must be http or https")
	case u.Host == "":
		return fail("missing host")
	case u.Path != "" && u.Path != "/":
		return fail("host must not include a path")
	case u.RawQuery != "" || u.Fragment != "" || u.ForceQuery:
		return fail("host must not include query or fragment")
	case u.User != nil:
		return fail("host must not carry credentials")
	}
	return u.Scheme + "://" + u.Host, nil
}
