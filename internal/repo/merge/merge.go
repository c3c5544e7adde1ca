// Package merge classifies files for a three-way merge and synthesizes
// conflict content. It does not touch the repository.
package merge

import (
	"bytes"
	"fmt"

	"github.com/keshon/gitlet/internal/logging"
	"github.com/keshon/gitlet/internal/util"
)

// Action is what a merge does with one file.
type Action int

const (
	// Keep leaves the current state alone. For a file absent from HEAD that
	// means it stays absent.
	Keep Action = iota
	// TakeTheirs checks out and stages the given branch's blob.
	TakeTheirs
	// Delete stages the file for removal and deletes the working copy.
	Delete
	// Conflict writes marker content combining both sides and stages it.
	Conflict
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case TakeTheirs:
		return "take-theirs"
	case Delete:
		return "delete"
	case Conflict:
		return "conflict"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Decision is the action chosen for one filename. Ours and Theirs are the
// blob IDs in HEAD and the given branch, empty when absent.
type Decision struct {
	Name   string
	Action Action
	Ours   string
	Theirs string
}

// Plan lists one decision per file present in HEAD or the given branch,
// sorted by name.
type Plan []Decision

// Conflicts returns the names of conflicting files in order.
func (p Plan) Conflicts() []string {
	var names []string
	for _, d := range p {
		if d.Action == Conflict {
			names = append(names, d.Name)
		}
	}
	return names
}

// Classify decides every file of head and given against split. Each map is
// filename to blob ID.
func Classify(head, given, split map[string]string) Plan {
	names := map[string]struct{}{}
	for n := range head {
		names[n] = struct{}{}
	}
	for n := range given {
		names[n] = struct{}{}
	}

	plan := make(Plan, 0, len(names))
	counts := map[Action]int{}
	for _, name := range util.SortedKeys(names) {
		h, inH := head[name]
		g, inG := given[name]
		s, inS := split[name]

		d := Decision{Name: name, Ours: h, Theirs: g, Action: decide(h, inH, g, inG, s, inS)}
		counts[d.Action]++
		plan = append(plan, d)
	}

	logger := logging.GetLogger("merge")
	logger.Debug().
		Int("files", len(plan)).
		Int("take_theirs", counts[TakeTheirs]).
		Int("delete", counts[Delete]).
		Int("conflicts", counts[Conflict]).
		Msg("merge classified")
	return plan
}

func decide(h string, inH bool, g string, inG bool, s string, inS bool) Action {
	switch {
	case inH && inG:
		switch {
		case h == g:
			return Keep
		case !inS:
			return Conflict
		case h == s:
			return TakeTheirs
		case g == s:
			return Keep
		default:
			return Conflict
		}
	case inH:
		// they deleted: follow them only if we left the file untouched
		if inS && h == s {
			return Delete
		}
		return Keep
	default:
		switch {
		case !inS:
			return TakeTheirs
		case g == s:
			return Keep
		default:
			return Conflict
		}
	}
}

// ConflictContent builds the working-tree content for a conflicted file.
// A side that does not have the file contributes nothing.
func ConflictContent(ours, theirs []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<<<<<<< HEAD\n")
	b.Write(ours)
	b.WriteString("=======\n")
	b.Write(theirs)
	b.WriteString(">>>>>>>\n")
	return b.Bytes()
}

// Kind tells how a merge ended.
type Kind int

const (
	FastForward Kind = iota + 1
	Clean
	Conflicted
)

func (k Kind) String() string {
	switch k {
	case FastForward:
		return "fast-forward"
	case Clean:
		return "clean"
	case Conflicted:
		return "conflicted"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result reports a completed merge. CommitID is the new merge commit, or the
// target commit for a fast-forward. Conflicts is sorted.
type Result struct {
	Kind      Kind
	CommitID  string
	Conflicts []string
}

// Message is the line Gitlet prints for the result, empty for a clean merge.
func (r Result) Message() string {
	switch r.Kind {
	case FastForward:
		return "Current branch fast-forwarded."
	case Conflicted:
		return "Encountered a merge conflict."
	}
	return ""
}

// CommitMessage is the message of the commit recording a merge.
func CommitMessage(given, current string) string {
	return fmt.Sprintf("Merged %s into %s.", given, current)
}
