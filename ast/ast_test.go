package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiFiltersNullChildren(t *testing.T) {
	lit := &LiteralStmt{Text: "x"}
	got := Multi(NullStmt{}, lit, NullStmt{})
	assert.Same(t, lit, got, "a single surviving child is returned unwrapped")
}

func TestMultiFlattensNestedMulti(t *testing.T) {
	a := &LiteralStmt{Text: "a"}
	b := &LiteralStmt{Text: "b"}
	c := &LiteralStmt{Text: "c"}
	inner := Multi(a, b)
	got := Multi(inner, c)

	m, ok := got.(*MultiStmt)
	require.True(t, ok)
	require.Len(t, m.Stmts, 3)
	assert.Same(t, a, m.Stmts[0])
	assert.Same(t, b, m.Stmts[1])
	assert.Same(t, c, m.Stmts[2])
}

func TestMultiOfNoChildrenIsNullStmt(t *testing.T) {
	got := Multi()
	assert.Equal(t, NullStmt{}, got)

	got = Multi(NullStmt{}, NullStmt{})
	assert.Equal(t, NullStmt{}, got)
}

func TestResolveBlockChildOverridesParent(t *testing.T) {
	parentBlock := &Block{Body: &LiteralStmt{Text: "parent"}}
	childBlock := &Block{Body: &LiteralStmt{Text: "child"}}

	parent := &Template{Name: "base", Blocks: map[string]*Block{"title": parentBlock, "footer": parentBlock}}
	child := &Template{Name: "derived", Parent: parent, Blocks: map[string]*Block{"title": childBlock}}

	b, ok := child.ResolveBlock("title")
	require.True(t, ok)
	assert.Same(t, childBlock, b)

	b, ok = child.ResolveBlock("footer")
	require.True(t, ok)
	assert.Same(t, parentBlock, b, "a block the child does not override falls through to the parent")

	_, ok = child.ResolveBlock("missing")
	assert.False(t, ok)
}

func TestRootWalksToOutermostAncestor(t *testing.T) {
	grandparent := &Template{Name: "grandparent"}
	parent := &Template{Name: "parent", Parent: grandparent}
	child := &Template{Name: "child", Parent: parent}

	assert.Same(t, grandparent, child.Root())
	assert.Same(t, grandparent, grandparent.Root())
}
