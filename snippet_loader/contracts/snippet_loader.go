package contracts

import (
	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// RegistrationType distinguishes trigger-driven from auto-triggered
// registrations.
type RegistrationType string

const (
	RegistrationTrigger RegistrationType = "trigger"
	RegistrationAuto    RegistrationType = "auto"
)

// RegistrationOptions qualifies one Register call. Key names the
// registration so re-registering under the same key replaces, rather than
// duplicates, a previous registration.
type RegistrationOptions struct {
	Type   RegistrationType
	Key    string
	Notify bool
}

// ISnippetEngine is the consuming snippet engine boundary. The loader is a
// pure producer into this interface and never queries match state.
type ISnippetEngine interface {
	Register(category string, records []models.SnippetRecord, opts RegistrationOptions)
	AnnounceRefresh(category string)
	PruneInvalidated(limit int)
	ActiveCategories() []string
}

// IFileWatcher arms one-shot write hooks. A hook fires once on the next
// write to path, then self-removes. Registering the same key again replaces
// the previous hook rather than stacking a second one.
type IFileWatcher interface {
	OnNextWrite(key string, path string, callback func()) error
}
