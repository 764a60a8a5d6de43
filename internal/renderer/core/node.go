package core

// NodeID identifies an element node. DOM and layout trees share the id space
// and index flat arenas with it; zero is never a valid node.
type NodeID uint32
