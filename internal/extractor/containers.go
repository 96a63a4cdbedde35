package extractor

import "github.com/codegraphhq/codegraph/internal/types"

// container is one open enclosing scope: a node already emitted that can
// contain further nodes (class, struct, interface, trait, enum, module),
// or the synthetic file node as the outermost fallback.
type container struct {
	nodeID        string
	qualifiedName string
	r             types.Range
}

// containerStack tracks nesting by range containment, matching the
// query-match captures in source order is all that's needed since
// child ranges always fall within their declaring container's range.
type containerStack struct {
	stack []container
}

func newContainerStack(fileNodeID, filePath string) *containerStack {
	return &containerStack{stack: []container{{nodeID: fileNodeID, qualifiedName: filePath, r: types.Range{EndLine: 1 << 30}}}}
}

// push opens a new container, to be popped once a later node's range no
// longer falls inside it.
func (c *containerStack) push(nodeID, qualifiedName string, r types.Range) {
	c.stack = append(c.stack, container{nodeID: nodeID, qualifiedName: qualifiedName, r: r})
}

// enclosing pops any containers that r has moved past (by end line) and
// returns the innermost one still containing r.
func (c *containerStack) enclosing(r types.Range) container {
	for len(c.stack) > 1 {
		top := c.stack[len(c.stack)-1]
		if r.StartLine >= top.r.StartLine && r.StartLine <= top.r.EndLine {
			break
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return c.stack[len(c.stack)-1]
}
