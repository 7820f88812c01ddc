package catalog

import "os"

// Environment maps a credential name to its presence. A credential counts as
// present only when it is set and non-empty.
type Environment map[string]bool

// EnvironmentFromOS snapshots the presence of every credential any of the
// given records declares. The environment may change between sessions, so
// callers take a fresh snapshot on every selection request.
func EnvironmentFromOS(records []ToolRecord) Environment {
	env := make(Environment)
	for _, record := range records {
		for _, credential := range record.RequiredCredentials {
			if _, seen := env[credential]; seen {
				continue
			}
			env[credential] = os.Getenv(credential) != ""
		}
	}
	return env
}

// Usable returns the subset of records whose required credentials are all
// present in the environment, preserving input order. Pure function of its
// inputs: no hidden state, no network calls.
func Usable(records []ToolRecord, env Environment) []ToolRecord {
	usable := make([]ToolRecord, 0, len(records))
	for _, record := range records {
		if credentialsSatisfied(record, env) {
			usable = append(usable, record)
		}
	}
	return usable
}

func credentialsSatisfied(record ToolRecord, env Environment) bool {
	for _, credential := range record.RequiredCredentials {
		if !env[credential] {
			return false
		}
	}
	return true
}
