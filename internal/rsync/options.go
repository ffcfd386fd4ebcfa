// Package rsync builds rsync invocations and interprets their progress output.
package rsync

// DefaultRemoteShell is the shell used for -e when no command is configured.
const DefaultRemoteShell = "ssh"

// RemoteShell selects whether rsync is told which remote shell to use.
// The zero value leaves -e out unless the destination carries a port marker.
type RemoteShell struct {
	Enabled bool
	Command string // empty means DefaultRemoteShell
}

// Shell returns the remote shell command to pass to -e.
func (r RemoteShell) Shell() string {
	if r.Command == "" {
		return DefaultRemoteShell
	}
	return r.Command
}

// Options is the immutable description of one rsync invocation.
// Build it with NewOptions; BuildArgs takes it by value.
type Options struct {
	Password        string
	ChangeSummary   bool // -i
	PartialProgress bool // -P
	Progress        bool // --progress
	RemoteShell     RemoteShell
	Sources         []string
	Destination     string // [user@]host[:path], may embed a port marker
}

// Option configures Options during construction.
type Option func(*Options)

// NewOptions creates Options for copying sources to destination.
// The sources slice is copied, so later changes by the caller have no effect.
func NewOptions(sources []string, destination string, opts ...Option) Options {
	o := Options{
		Sources:     append([]string(nil), sources...),
		Destination: destination,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPassword sets the daemon-access password. An empty password is ignored.
func WithPassword(password string) Option {
	return func(o *Options) { o.Password = password }
}

// WithChangeSummary requests an itemized change summary.
func WithChangeSummary(enabled bool) Option {
	return func(o *Options) { o.ChangeSummary = enabled }
}

// WithPartialProgress requests --partial --progress (-P).
func WithPartialProgress(enabled bool) Option {
	return func(o *Options) { o.PartialProgress = enabled }
}

// WithProgress requests --progress.
func WithProgress(enabled bool) Option {
	return func(o *Options) { o.Progress = enabled }
}

// WithRemoteShell forces -e with the given shell command ("" for ssh).
func WithRemoteShell(command string) Option {
	return func(o *Options) {
		o.RemoteShell = RemoteShell{Enabled: true, Command: command}
	}
}

// WithRemoteShellCommand changes the shell used for -e without forcing it.
// It only takes effect when -e is needed for another reason, such as a port marker.
func WithRemoteShellCommand(command string) Option {
	return func(o *Options) { o.RemoteShell.Command = command }
}
