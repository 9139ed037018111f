package git

// SSHAuth exports sshAuth for testing.
var SSHAuth = sshAuth //nolint:gochecknoglobals // test export
