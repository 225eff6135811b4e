package pathtrace

// frontierEntry is a node waiting to be expanded and the path that reached it.
type frontierEntry[NodeType comparable] struct {
	Node NodeType
	Path []NodeType
}

// fifoQueue backs breadth-first search.
type fifoQueue[NodeType comparable] struct {
	items []frontierEntry[NodeType]
	head  int
}

func (queue *fifoQueue[NodeType]) Len() int { return len(queue.items) - queue.head }

func (queue *fifoQueue[NodeType]) Push(entry frontierEntry[NodeType]) {
	queue.items = append(queue.items, entry)
}

func (queue *fifoQueue[NodeType]) Pop() frontierEntry[NodeType] {
	entry := queue.items[queue.head]
	queue.items[queue.head] = frontierEntry[NodeType]{}
	queue.head++
	// reclaim the consumed prefix once it dominates the buffer
	if queue.head > 32 && queue.head*2 > len(queue.items) {
		queue.items = append([]frontierEntry[NodeType](nil), queue.items[queue.head:]...)
		queue.head = 0
	}
	return entry
}

// lifoStack backs depth-first search.
type lifoStack[NodeType comparable] []frontierEntry[NodeType]

func (stack lifoStack[NodeType]) Len() int { return len(stack) }

func (stack *lifoStack[NodeType]) Push(entry frontierEntry[NodeType]) {
	*stack = append(*stack, entry)
}

func (stack *lifoStack[NodeType]) Pop() frontierEntry[NodeType] {
	oldStack := *stack
	n := len(oldStack)
	entry := oldStack[n-1]
	oldStack[n-1] = frontierEntry[NodeType]{}
	*stack = oldStack[:n-1]
	return entry
}
