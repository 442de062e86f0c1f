// Package vault defines the credential entry model shared across the sync
// pipeline and the content fingerprint used to compare entries between vaults.
package vault

// Entry is a single login credential as it exists in a vault.
//
// Folder is carried so imports land in the right place, but it is not part
// of an entry's comparison identity; moving a credential between folders
// does not make it a new credential. Optional fields that a vault leaves
// unset are normalized to the empty string at parse time.
type Entry struct {
	Name     string
	URL      string
	Username string
	Password string
	Notes    string
	Folder   string
}
