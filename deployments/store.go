package deployments

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/umbracle/ethgo"
	bolt "go.etcd.io/bbolt"
)

const (
	// FileName is the name of the registry database inside the data directory
	FileName = "deployments.db"

	deploymentsCacheSize = 128
)

var (
	// ErrNotFound is returned when no deployment is recorded for the given chain and name
	ErrNotFound = errors.New("deployment not found")

	// bucket to store deployment records
	deploymentsBucket = []byte("deployments")
)

/*
Bolt DB schema:

deployments/
|--> chainID/name -> *Deployment (json marshalled)
*/

// Deployment is a record of a contract deployed by the harness
type Deployment struct {
	Name        string        `json:"name"`
	ChainID     uint64        `json:"chainID"`
	Address     ethgo.Address `json:"address"`
	TxHash      ethgo.Hash    `json:"txHash"`
	BlockNumber uint64        `json:"blockNumber"`
	DeployedAt  time.Time     `json:"deployedAt"`
}

// Store persists deployment records in a bolt database
type Store struct {
	db     *bolt.DB
	cache  *lru.Cache
	logger hclog.Logger
}

// Open opens (or creates) the registry database in the given data directory
func Open(dataDir string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	db, err := bolt.Open(filepath.Join(dataDir, FileName), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open deployments db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(deploymentsBucket); err != nil {
			return fmt.Errorf("failed to create bucket=%s: %w", string(deploymentsBucket), err)
		}

		return nil
	})
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	cache, err := lru.New(deploymentsCacheSize)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Store{
		db:     db,
		cache:  cache,
		logger: logger.Named("deployments"),
	}, nil
}

// Put records the deployment, replacing an earlier one with the same chain id and name
func (s *Store) Put(d *Deployment) error {
	if d.Name == "" {
		return errors.New("deployment name is empty")
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}

	key := deploymentKey(d.ChainID, d.Name)

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(deploymentsBucket).Put([]byte(key), raw)
	}); err != nil {
		return err
	}

	cached := *d
	s.cache.Add(key, &cached)
	s.logger.Debug("deployment recorded", "name", d.Name, "chain_id", d.ChainID, "address", d.Address)

	return nil
}

// Get returns the deployment recorded for the given chain id and name
func (s *Store) Get(chainID uint64, name string) (*Deployment, error) {
	key := deploymentKey(chainID, name)

	// the cache holds private copies, callers get their own
	if cached, ok := s.cache.Get(key); ok {
		if d, ok := cached.(*Deployment); ok {
			result := *d

			return &result, nil
		}
	}

	var deployment *Deployment

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(deploymentsBucket).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%w: %s on chain %d", ErrNotFound, name, chainID)
		}

		return json.Unmarshal(v, &deployment)
	})
	if err != nil {
		return nil, err
	}

	cached := *deployment
	s.cache.Add(key, &cached)

	return deployment, nil
}

// List returns every recorded deployment ordered by chain id and name
func (s *Store) List() ([]*Deployment, error) {
	var result []*Deployment

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(deploymentsBucket).ForEach(func(k, v []byte) error {
			var d *Deployment
			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("failed to decode deployment %s: %w", string(k), err)
			}

			result = append(result, d)

			return nil
		})
	})

	return result, err
}

// Close closes the database
func (s *Store) Close() error {
	s.cache.Purge()

	return s.db.Close()
}

// deploymentKey builds the bolt key; the chain id is zero padded so keys sort numerically
func deploymentKey(chainID uint64, name string) string {
	return fmt.Sprintf("%020d/%s", chainID, strings.TrimSpace(name))
}
