package portfolio

// IDAllocator hands out identifiers for new records. The interface keeps
// id generation out of the mutation paths so a future concurrent host
// can swap in something stronger than a max-scan.
type IDAllocator interface {
	Next() int
}

// Sequence is the default allocator: a plain monotonic counter.
type Sequence struct {
	next int
}

func NewSequence(start int) *Sequence {
	if start < 1 {
		start = 1
	}
	return &Sequence{next: start}
}

func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// SeedTaskSequence builds a task id allocator starting one past the
// highest task id anywhere in the portfolio. Task ids are unique across
// all projects, not per project.
func SeedTaskSequence(p Portfolio) *Sequence {
	maxID := 0
	for _, project := range p {
		for _, task := range project.Tasks {
			if task.ID > maxID {
				maxID = task.ID
			}
		}
	}
	return NewSequence(maxID + 1)
}

// SeedProjectSequence builds a project id allocator the same way.
func SeedProjectSequence(p Portfolio) *Sequence {
	maxID := 0
	for _, project := range p {
		if project.ID > maxID {
			maxID = project.ID
		}
	}
	return NewSequence(maxID + 1)
}
