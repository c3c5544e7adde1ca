package object

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/logging"
)

const (
	kindBlob   = "blob"
	kindCommit = "commit"
)

// Store is the content-addressed object database. Each object is one file
// named by its hex ID holding "<kind>\x00<payload>".
type Store struct {
	dir    string
	fs     fs.FS
	hasher Hasher
	log    zerolog.Logger
}

// NewStore creates a store rooted at dir. The directory must exist.
func NewStore(dir string, fsys fs.FS, hasher Hasher) *Store {
	return &Store{
		dir:    dir,
		fs:     fsys,
		hasher: hasher,
		log:    logging.GetLogger("objects"),
	}
}

func (s *Store) Hasher() Hasher { return s.hasher }

// HashBlob returns the ID content would be stored under, without storing it.
// Blob IDs hash "blob\x00" followed by the content, and commit encodings start
// with "commit\n", so a file can never take a commit's ID.
func (s *Store) HashBlob(content []byte) string {
	data := make([]byte, 0, len(kindBlob)+1+len(content))
	data = append(data, kindBlob...)
	data = append(data, 0)
	data = append(data, content...)
	return s.hasher.Sum(data)
}

// PutBlob stores content and returns its ID. Storing the same content twice
// writes once.
func (s *Store) PutBlob(content []byte) (string, error) {
	id := s.HashBlob(content)
	if err := s.write(id, kindBlob, content); err != nil {
		return "", err
	}
	return id, nil
}

// GetBlob returns the content of blob id.
func (s *Store) GetBlob(id string) ([]byte, error) {
	return s.read(id, kindBlob)
}

// PutCommit computes the commit's ID, records it in c.ID and stores the commit.
func (s *Store) PutCommit(c *Commit) (string, error) {
	if c.Files == nil {
		c.Files = map[string]string{}
	}
	c.ID = s.hasher.Sum(c.canonical())

	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode commit: %w", err)
	}
	if err := s.write(c.ID, kindCommit, payload); err != nil {
		return "", err
	}
	return c.ID, nil
}

// GetCommit reads commit id. The stored ID is trusted, not recomputed.
func (s *Store) GetCommit(id string) (*Commit, error) {
	payload, err := s.read(id, kindCommit)
	if err != nil {
		return nil, err
	}
	var c Commit
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("failed to decode commit %q: %w", id, err)
	}
	if c.Files == nil {
		c.Files = map[string]string{}
	}
	return &c, nil
}

// CommitIDs lists every stored commit.
func (s *Store) CommitIDs() ([]string, error) {
	return s.commitIDsWithPrefix("")
}

// ResolveCommitID expands an abbreviated commit ID. It fails unless exactly
// one stored commit starts with prefix.
func (s *Store) ResolveCommitID(prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if !isHex(prefix) || len(prefix) > s.hasher.HexLen() {
		return "", unknownID(prefix)
	}

	if len(prefix) == s.hasher.HexLen() {
		if kind, err := s.kindOf(prefix); err == nil && kind == kindCommit {
			return prefix, nil
		}
		return "", unknownID(prefix)
	}

	ids, err := s.commitIDsWithPrefix(prefix)
	if err != nil {
		return "", err
	}
	if len(ids) != 1 {
		s.log.Debug().Str("prefix", prefix).Int("matches", len(ids)).Msg("commit prefix did not resolve")
		return "", unknownID(prefix).WithDetail("matches", len(ids))
	}
	return ids[0], nil
}

func unknownID(id string) *errors.Error {
	return errors.New(errors.ErrAmbiguousOrUnknownID, "No commit with that id exists.").WithDetail("id", id)
}

func (s *Store) commitIDsWithPrefix(prefix string) ([]string, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read objects directory %q: %w", s.dir, err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isHex(name) || !strings.HasPrefix(name, prefix) {
			continue
		}
		kind, err := s.kindOf(name)
		if err != nil {
			return nil, err
		}
		if kind == kindCommit {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id)
}

func (s *Store) write(id, kind string, payload []byte) error {
	p := s.path(id)
	if s.fs.Exists(p) {
		got, err := s.kindOf(id)
		if err != nil {
			return err
		}
		if got != kind {
			return fmt.Errorf("failed to write %s %q: stored object is a %s", kind, id, got)
		}
		s.log.Trace().Str("id", id).Str("kind", kind).Msg("object already stored")
		return nil
	}

	data := make([]byte, 0, len(kind)+1+len(payload))
	data = append(data, kind...)
	data = append(data, 0)
	data = append(data, payload...)

	if err := fs.WriteFileAtomic(s.fs, p, data); err != nil {
		return fmt.Errorf("failed to write %s %q: %w", kind, id, err)
	}
	s.log.Debug().Str("id", id).Str("kind", kind).Int("size", len(payload)).Msg("stored object")
	return nil
}

func (s *Store) load(id string) (string, []byte, error) {
	if !isHex(id) {
		return "", nil, errors.Newf(errors.ErrNotFound, "No object with id %q exists.", id)
	}
	data, err := s.fs.ReadFile(s.path(id))
	if err != nil {
		if s.fs.IsNotExist(err) {
			return "", nil, errors.Wrap(err, errors.ErrNotFound, fmt.Sprintf("No object with id %q exists.", id))
		}
		return "", nil, fmt.Errorf("failed to read object %q: %w", id, err)
	}
	kind, payload, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return "", nil, fmt.Errorf("object %q is corrupt: missing header", id)
	}
	return string(kind), payload, nil
}

func (s *Store) kindOf(id string) (string, error) {
	kind, _, err := s.load(id)
	return kind, err
}

func (s *Store) read(id, kind string) ([]byte, error) {
	got, payload, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if got != kind {
		return nil, errors.Newf(errors.ErrNotFound, "No %s with id %q exists.", kind, id)
	}
	return payload, nil
}
