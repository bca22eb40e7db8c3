package kind

// Kind represents the type of shell.
type Kind string

const (
	Bash    Kind = "bash"
	Zsh     Kind = "zsh"
	Dash    Kind = "dash"
	Unknown Kind = "unknown"
)

// ShellKindFromString tries to match a string to a shell Kind.
func ShellKindFromString(name string) (Kind, bool) {
	switch name {
	case "bash":
		return Bash, true
	case "zsh":
		return Zsh, true
	case "dash":
		return Dash, true
	}
	return Unknown, false
}
