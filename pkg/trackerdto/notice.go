package trackerdto

// Notice is a one-line message shown above a screen.
type Notice struct {
	Key  string
	Data map[string]any
}
