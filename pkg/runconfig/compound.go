// SPDX-License-Identifier: MPL-2.0

package runconfig

import "golang.org/x/exp/slices"

// CompoundConfiguration launches a set of other configurations by name.
// It carries no program arguments of its own.
type CompoundConfiguration struct {
	ConfigName string   `json:"name"`
	Temporary  bool     `json:"temporary"`
	Members    []string `json:"members,omitempty"`
}

// NewCompoundConfiguration returns an empty compound configuration.
func NewCompoundConfiguration(name string) *CompoundConfiguration {
	return &CompoundConfiguration{ConfigName: name}
}

func (c *CompoundConfiguration) Name() string { return c.ConfigName }
func (c *CompoundConfiguration) SetName(name string) { c.ConfigName = name }
func (c *CompoundConfiguration) Type() TypeID { return TypeCompound }
func (c *CompoundConfiguration) IsTemporary() bool { return c.Temporary }
func (c *CompoundConfiguration) SetTemporary(temporary bool) { c.Temporary = temporary }

// MemberNames returns a copy of the member configuration names.
func (c *CompoundConfiguration) MemberNames() []string { return slices.Clone(c.Members) }
