package kubeconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fixed markers written on every freshly created document
const (
	APIVersion = "v1"
	Kind       = "Config"
)

// Role names one of the parallel collections of a document
type Role string

const (
	RoleClusters   Role = "clusters"
	RoleContexts   Role = "contexts"
	RoleUsers      Role = "users"
	RoleExtensions Role = "extensions"
)

// Roles returns the known collection roles in document order
func Roles() []Role {
	return []Role{RoleClusters, RoleContexts, RoleUsers, RoleExtensions}
}

// Document is a kubeconfig file. Top-level fields it does not model are
// collected in Extra as YAML nodes and written back unchanged.
type Document struct {
	APIVersion     string               `yaml:"apiVersion"`
	Kind           string               `yaml:"kind"`
	Clusters       Collection           `yaml:"clusters"`
	Contexts       Collection           `yaml:"contexts"`
	Users          Collection           `yaml:"users"`
	Extensions     Collection           `yaml:"extensions,omitempty"`
	CurrentContext EntryKey             `yaml:"current-context"`
	Extra          map[string]yaml.Node `yaml:",inline"`
}

// NewDocument returns an empty document with the schema markers set
func NewDocument() *Document {
	doc := &Document{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	doc.Normalize()
	return doc
}

// Normalize fills missing markers and replaces nil collections with empty ones
func (d *Document) Normalize() {
	if d.APIVersion == "" {
		d.APIVersion = APIVersion
	}
	if d.Kind == "" {
		d.Kind = Kind
	}
	for _, role := range Roles() {
		c := d.Collection(role)
		if *c == nil {
			*c = Collection{}
		}
	}
}

// Collection returns a pointer to the collection for role, or nil when the
// role is unknown.
func (d *Document) Collection(role Role) *Collection {
	switch role {
	case RoleClusters:
		return &d.Clusters
	case RoleContexts:
		return &d.Contexts
	case RoleUsers:
		return &d.Users
	case RoleExtensions:
		return &d.Extensions
	default:
		return nil
	}
}

// Upsert merges entry into the collection for role
func (d *Document) Upsert(role Role, entry Entry) error {
	c := d.Collection(role)
	if c == nil {
		return fmt.Errorf("unknown collection %q", role)
	}
	*c = c.Upsert(entry)
	return nil
}

// SetActive points current-context at key
func (d *Document) SetActive(key EntryKey) {
	d.CurrentContext = key
}
