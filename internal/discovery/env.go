// Package discovery finds installed editors on the local machine, turns
// candidate paths into Installation records and ranks them.
//
// Discovery never fails loudly. Unreadable directories, malformed desktop
// entries and broken manifests only reduce what is found; the worst case
// is an empty result.
package discovery

import (
	"os"
	"os/exec"
)

// defaultXDGDataDirs is used when XDG_DATA_DIRS is unset or empty.
const defaultXDGDataDirs = "/usr/local/share:/usr/share"

// Env is the slice of the process environment discovery depends on.
type Env struct {
	// Home is the user's home directory; empty disables home-relative probes.
	Home string
	// LookupEnv reads environment variables.
	LookupEnv func(string) (string, bool)
	// LookPath resolves bare command names from desktop entries.
	LookPath func(string) (string, error)
}

// SystemEnv returns an Env backed by the running process.
func SystemEnv() Env {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Env{
		Home:      home,
		LookupEnv: os.LookupEnv,
		LookPath:  exec.LookPath,
	}
}

func (e Env) getenv(key string) string {
	if e.LookupEnv == nil {
		return ""
	}
	v, _ := e.LookupEnv(key)
	return v
}

func (e Env) lookPath(name string) (string, bool) {
	if e.LookPath == nil {
		return "", false
	}
	p, err := e.LookPath(name)
	if err != nil {
		return "", false
	}
	return p, true
}
