package tone

// Queue is a FIFO of tone requests. The front end appends while building the
// sequence; the engine peeks and pops during playback. The two phases never
// overlap, so Queue does no locking.
type Queue struct {
	head *Request
	tail *Request
	size int
}

// NewQueue returns a queue holding reqs in order.
func NewQueue(reqs ...*Request) *Queue {
	q := &Queue{}
	for _, r := range reqs {
		q.Append(r)
	}
	return q
}

// Append adds r at the tail. It does not validate r.
func (q *Queue) Append(r *Request) {
	r.next = nil
	if q.tail == nil {
		q.head = r
	} else {
		q.tail.next = r
	}
	q.tail = r
	q.size++
}

// Peek returns the active request, or nil when the queue is empty.
func (q *Queue) Peek() *Request {
	return q.head
}

// Pop releases the head and advances to the next request.
// Popping an empty queue is a no-op.
func (q *Queue) Pop() {
	if q.head == nil {
		return
	}
	old := q.head
	q.head = old.next
	old.next = nil
	if q.head == nil {
		q.tail = nil
	}
	q.size--
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	return q.size
}

// Empty reports whether no requests remain.
func (q *Queue) Empty() bool {
	return q.head == nil
}

// Requests returns the pending requests in order, for inspection.
func (q *Queue) Requests() []*Request {
	out := make([]*Request, 0, q.size)
	for r := q.head; r != nil; r = r.next {
		out = append(out, r)
	}
	return out
}
