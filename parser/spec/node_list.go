package spec

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

func (h *NodeList) Remove(i int) *Node {
	if i < 0 {
		return nil
	}
	if i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

func (h *NodeList) WedgeIn(i int, n *Node) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, n)
		return
	}
	*h = append((*h)[:i+1], (*h)[i:]...)
	(*h)[i] = n
}

func (h *NodeList) Pop() *Node {
	if len(*h) == 0 {
		return nil
	}
	popped := (*h)[len((*h))-1]
	*h = (*h)[:len((*h))-1]
	return popped
}

// PopUntilConditions pops until one of funcs matches the top of the list,
// leaving the matching node in place.
func (h *NodeList) PopUntilConditions(funcs ...func(e *Node) bool) *Node {
	for {
		last := len(*h) - 1
		if last < 0 {
			return nil
		}
		for _, f := range funcs {
			if f((*h)[last]) {
				return (*h)[last]
			}
		}

		h.Pop()
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#stack-of-open-elements
type StackOfOpenElements struct {
	NodeList
}

func (s *StackOfOpenElements) Push(n *Node) {
	s.NodeList = append(s.NodeList, n)
}

// Top is the current node, or nil when the stack is empty.
func (s *StackOfOpenElements) Top() *Node {
	if len(s.NodeList) == 0 {
		return nil
	}
	return s.NodeList[len(s.NodeList)-1]
}

// PopThrough pops elements up to and including n. It does nothing if n is
// not on the stack.
func (s *StackOfOpenElements) PopThrough(n *Node) {
	i := s.Contains(n)
	if i < 0 {
		return
	}
	s.NodeList = s.NodeList[:i]
}
