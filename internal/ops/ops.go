package ops

import (
	"fmt"

	"mkvsmith/internal/media/tracks"
)

// Operation is a single declarative edit. The set of operations is closed:
// only the types in this package implement it.
type Operation interface {
	fmt.Stringer
	operation()
}

// RemoveTrack drops the track with the given global index from the output.
type RemoveTrack struct {
	Index int
}

// SetLanguage sets the language tag of a track.
type SetLanguage struct {
	Index    int
	Language string
}

// SetTitle sets the track name of a track.
type SetTitle struct {
	Index int
	Title string
}

// SetDefault makes a track the single default track of its type.
type SetDefault struct {
	Type  tracks.Type
	Index int
}

// TranscodeAudio re-encodes an audio track to Codec.
type TranscodeAudio struct {
	Index int
	Codec string
}

// AddExternalTrack appends a track from another file.
type AddExternalTrack struct {
	Type     tracks.Type
	Path     string
	Language string
	Default  bool
}

func (RemoveTrack) operation()      {}
func (SetLanguage) operation()      {}
func (SetTitle) operation()         {}
func (SetDefault) operation()       {}
func (TranscodeAudio) operation()   {}
func (AddExternalTrack) operation() {}

func (o RemoveTrack) String() string { return fmt.Sprintf("remove track %d", o.Index) }

func (o SetLanguage) String() string {
	return fmt.Sprintf("set language of track %d to %s", o.Index, o.Language)
}

func (o SetTitle) String() string { return fmt.Sprintf("set title of track %d to %q", o.Index, o.Title) }

func (o SetDefault) String() string {
	return fmt.Sprintf("set track %d as default %s", o.Index, o.Type)
}

func (o TranscodeAudio) String() string {
	return fmt.Sprintf("transcode track %d to %s", o.Index, o.Codec)
}

func (o AddExternalTrack) String() string {
	s := fmt.Sprintf("add %s %s (%s)", o.Type, o.Path, o.Language)
	if o.Default {
		s += " as default"
	}
	return s
}

// Queue is an ordered list of operations. Insertion order is precedence:
// later operations override earlier ones on the same key.
type Queue struct {
	ops []Operation
}

// NewQueue returns a queue holding ops in order.
func NewQueue(ops ...Operation) *Queue {
	q := &Queue{}
	q.Add(ops...)
	return q
}

// Add appends operations to the queue.
func (q *Queue) Add(ops ...Operation) {
	for _, op := range ops {
		if op != nil {
			q.ops = append(q.ops, op)
		}
	}
}

// Operations returns a copy of the queued operations.
func (q *Queue) Operations() []Operation {
	if q == nil {
		return nil
	}
	return append([]Operation(nil), q.ops...)
}

// Len returns the number of queued operations.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.ops)
}
