package rsync

import (
	"fmt"
	"strings"
)

const passwordPrefix = "-pass="

// BuildArgs constructs the argument vector for rsync (without the executable).
// Token order is fixed: password, -i, -P, --progress, -e, sources, destination.
// Nothing is validated; an empty source list is passed through as is.
func BuildArgs(o Options) []string {
	var args []string

	if o.Password != "" {
		args = append(args, fmt.Sprintf("%s'%s'", passwordPrefix, o.Password))
	}
	if o.ChangeSummary {
		args = append(args, "-i")
	}
	if o.PartialProgress {
		args = append(args, "-P")
	}
	if o.Progress {
		args = append(args, "--progress")
	}

	host := ResolveHost(o.Destination)
	if host.ForceRemoteShell || o.RemoteShell.Enabled {
		args = append(args, remoteShellArg(o.RemoteShell.Shell(), host))
	}

	args = append(args, o.Sources...)
	args = append(args, host.Host)

	return args
}

// remoteShellArg renders the -e token. rsync splits the value on whitespace
// itself, so the shell and its port travel as a single token.
func remoteShellArg(shell string, host ResolvedHost) string {
	if host.HasPort {
		return fmt.Sprintf("-e %s -p %d", shell, host.Port)
	}
	return "-e " + shell
}

// RedactArgs returns a copy of args with the password value masked.
// Use it for anything that ends up in logs or error messages.
func RedactArgs(args []string) []string {
	redacted := make([]string, len(args))
	for i, arg := range args {
		if strings.HasPrefix(arg, passwordPrefix) {
			arg = passwordPrefix + "'***'"
		}
		redacted[i] = arg
	}
	return redacted
}
