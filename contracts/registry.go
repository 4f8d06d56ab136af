package contracts

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/0xPolygon/lottery-harness/helper/common"
)

const (
	// LotteryName is the artifact name of the lottery contract
	LotteryName = "Lottery"

	artifactsDir = "artifacts"
)

// ErrArtifactNotFound is returned when no artifact is registered under the requested name
var ErrArtifactNotFound = errors.New("artifact not found")

//go:embed artifacts/*.json
var embeddedArtifacts embed.FS

// Registry resolves contract artifacts by name
type Registry struct {
	lock      sync.RWMutex
	artifacts map[string]*Artifact
}

// NewRegistry creates an empty artifact registry
func NewRegistry() *Registry {
	return &Registry{artifacts: make(map[string]*Artifact)}
}

// DefaultRegistry returns a registry populated with the artifacts bundled into the binary
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	entries, err := embeddedArtifacts.ReadDir(artifactsDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		raw, err := embeddedArtifacts.ReadFile(artifactsDir + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		artifact, err := DecodeArtifact(raw)
		if err != nil {
			return nil, fmt.Errorf("bundled artifact %s: %w", entry.Name(), err)
		}

		r.Register(nameOrFile(artifact, entry.Name()), artifact)
	}

	return r, nil
}

// LoadDir registers every *.json artifact found in the given directory.
// Artifacts with an already registered name replace the previous entry.
func (r *Registry) LoadDir(dir string) error {
	files, err := common.DirEntries(dir, "*.json")
	if err != nil {
		return err
	}

	for _, file := range files {
		artifact, err := LoadArtifactFromFile(file)
		if err != nil {
			return err
		}

		r.Register(nameOrFile(artifact, file), artifact)
	}

	return nil
}

// Register adds the artifact under the given name
func (r *Registry) Register(name string, artifact *Artifact) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if artifact.Name == "" {
		artifact.Name = name
	}

	r.artifacts[name] = artifact
}

// Get returns the artifact registered under the given name
func (r *Registry) Get(name string) (*Artifact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	artifact, ok := r.artifacts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}

	return artifact, nil
}

// Names returns the sorted list of registered artifact names
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.artifacts))
	for name := range r.artifacts {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func nameOrFile(artifact *Artifact, file string) string {
	if artifact.Name != "" {
		return artifact.Name
	}

	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
