package object

import (
	"encoding/json"
	"fmt"
)

// ObjectStatus indicates the state of an object on disk.
type ObjectStatus int

const (
	OK ObjectStatus = iota
	Missing
	Damaged
)

func (s ObjectStatus) String() string {
	switch s {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Damaged:
		return "damaged"
	}
	return fmt.Sprintf("ObjectStatus(%d)", int(s))
}

// ObjectCheck is the verification result for one object.
type ObjectCheck struct {
	ID     string
	Kind   string
	Status ObjectStatus
}

// VerifyObject re-hashes object id and compares the digest with its name.
func (s *Store) VerifyObject(id string) (ObjectCheck, error) {
	check := ObjectCheck{ID: id}
	if !s.fs.Exists(s.path(id)) {
		check.Status = Missing
		return check, nil
	}
	kind, payload, err := s.load(id)
	if err != nil {
		check.Status = Damaged
		return check, nil
	}
	check.Kind = kind

	var actual string
	switch kind {
	case kindBlob:
		actual = s.HashBlob(payload)
	case kindCommit:
		var c Commit
		if err := json.Unmarshal(payload, &c); err != nil || c.ID != id {
			check.Status = Damaged
			return check, nil
		}
		actual = s.hasher.Sum(c.canonical())
	default:
		check.Status = Damaged
		return check, nil
	}

	if actual != id {
		check.Status = Damaged
	}
	return check, nil
}

// Verify checks every object in the store, in directory order.
func (s *Store) Verify() ([]ObjectCheck, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read objects directory %q: %w", s.dir, err)
	}
	var checks []ObjectCheck
	for _, e := range entries {
		if e.IsDir() || !isHex(e.Name()) {
			continue
		}
		check, err := s.VerifyObject(e.Name())
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}
