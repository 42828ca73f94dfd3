package skill

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Discovery locates installed skills across configured directories. Earlier
// directories take precedence when two skills share a name.
type Discovery struct {
	skillDirs []string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithDefaultDirs initializes with the default skill directories: the
// repo-local ./skills directory followed by the user-global one.
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.skillDirs = []string{
			"./skills",
			filepath.Join(homeDir, ".skillforge", "skills"),
		}
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		if err := WithDefaultDirs()(d); err != nil {
			return nil, err
		}
	} else {
		for _, opt := range opts {
			if err := opt(d); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// DiscoverSkills finds all parseable skills from the configured directories.
// Directories that do not exist, entries without a definition file, and
// entries whose definition file fails to parse are skipped; discovery is
// best-effort by design.
func (d *Discovery) DiscoverSkills() (map[string]*Definition, error) {
	found := make(map[string]*Definition)

	for _, dir := range d.skillDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			entryPath := filepath.Join(dir, entry.Name())

			info, err := os.Stat(entryPath)
			if err != nil || !info.IsDir() {
				continue
			}
			if !Exists(entryPath) {
				continue
			}

			def, err := Load(entryPath)
			if err != nil {
				continue
			}

			if _, exists := found[def.Name]; !exists {
				found[def.Name] = def
			}
		}
	}

	return found, nil
}

// GetSkill returns a specific skill by name
func (d *Discovery) GetSkill(name string) (*Definition, error) {
	found, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	def, exists := found[name]
	if !exists {
		return nil, errors.Errorf("skill '%s' not found", name)
	}

	return def, nil
}

// ListNames returns the sorted names of all discoverable skills
func (d *Discovery) ListNames() ([]string, error) {
	found, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
